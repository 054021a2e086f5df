package view

// Dialog is the open modal of a view, if any, with the form values typed into
// it. Kind is empty when no dialog is open.
type Dialog struct {
	Kind   string            `json:"kind,omitempty"`
	Target string            `json:"target,omitempty"`
	Value  string            `json:"value,omitempty"`
	Fields map[string]string `json:"fields,omitempty"`
}

func (d Dialog) Open() bool {
	return d.Kind != ""
}

func (d Dialog) Is(kind string) bool {
	return d.Kind != "" && d.Kind == kind
}

func (d Dialog) Field(name string) string {
	return d.Fields[name]
}

func (d Dialog) Clone() Dialog {
	if d.Fields == nil {
		return d
	}
	fields := make(map[string]string, len(d.Fields))
	for k, v := range d.Fields {
		fields[k] = v
	}
	d.Fields = fields
	return d
}
