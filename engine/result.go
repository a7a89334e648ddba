package engine

// Result of style compilation. Empty fields are omitted when serialized.
type Result struct {
	CSS        string `json:"css,omitempty" yaml:"css,omitempty"`
	Classnames string `json:"classnames,omitempty" yaml:"classnames,omitempty"`
}

// IsEmpty reports that nothing was produced.
func (r *Result) IsEmpty() bool {
	return r == nil || (len(r.CSS) == 0 && len(r.Classnames) == 0)
}

func (r *Result) clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// Declaration is a single CSS property and its value before sanitization.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string {
	return d.Property + ": " + d.Value
}
