package directive

// Field describes one input of a directive, in prompting order
type Field struct {
	Name   string
	Prompt string
	Get    func(Fields) string
	Set    func(*Fields, string)
}

// FieldOrder lists the fields in the order they are asked for
var FieldOrder = []Field{
	{
		Name:   "protocol",
		Prompt: "Protocol (tcp, udp, icmp, ip)",
		Get:    func(f Fields) string { return f.Protocol },
		Set:    func(f *Fields, v string) { f.Protocol = v },
	},
	{
		Name:   "source",
		Prompt: "Source IP",
		Get:    func(f Fields) string { return f.Source },
		Set:    func(f *Fields, v string) { f.Source = v },
	},
	{
		Name:   "source_port",
		Prompt: "Source port",
		Get:    func(f Fields) string { return f.SourcePort },
		Set:    func(f *Fields, v string) { f.SourcePort = v },
	},
	{
		Name:   "destination",
		Prompt: "Destination IP",
		Get:    func(f Fields) string { return f.Destination },
		Set:    func(f *Fields, v string) { f.Destination = v },
	},
	{
		Name:   "destination_port",
		Prompt: "Destination port",
		Get:    func(f Fields) string { return f.DestinationPort },
		Set:    func(f *Fields, v string) { f.DestinationPort = v },
	},
	{
		Name:   "message",
		Prompt: "Message",
		Get:    func(f Fields) string { return f.Message },
		Set:    func(f *Fields, v string) { f.Message = v },
	},
	{
		Name:   "sid",
		Prompt: "SID",
		Get:    func(f Fields) string { return f.SID },
		Set:    func(f *Fields, v string) { f.SID = v },
	},
	{
		Name:   "rev",
		Prompt: "Revision",
		Get:    func(f Fields) string { return f.Rev },
		Set:    func(f *Fields, v string) { f.Rev = v },
	},
}

func fieldName(structField string) string {
	switch structField {
	case "SourcePort":
		return "source_port"
	case "DestinationPort":
		return "destination_port"
	case "SID":
		return "sid"
	case "Rev":
		return "rev"
	case "Protocol":
		return "protocol"
	case "Source":
		return "source"
	case "Destination":
		return "destination"
	case "Message":
		return "message"
	}
	return structField
}

// Merge fills empty fields of f from fallback
func (f Fields) Merge(fallback Fields) Fields {
	for _, field := range FieldOrder {
		if field.Get(f) == "" {
			field.Set(&f, field.Get(fallback))
		}
	}
	return f
}
