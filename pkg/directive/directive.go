// Package directive builds single alert directives from structured input.
//
// Build is pure: it validates the fields and returns the directive without
// touching the filesystem. Persistence lives in pkg/author.
package directive

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/arthur-debert/snortamv/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// Protocols accepted in a directive header
var Protocols = []string{"tcp", "udp", "icmp", "ip"}

// DefaultLine seeds a rule file that does not exist yet
const DefaultLine = `alert icmp any any -> any any (msg:"ICMP detected"; sid:1000001; rev:1;)`

// Default is DefaultLine as a Directive
var Default = Directive{
	Protocol:        "icmp",
	Source:          "any",
	SourcePort:      "any",
	Destination:     "any",
	DestinationPort: "any",
	Message:         "ICMP detected",
	SID:             1000001,
	Rev:             1,
}

// Fields is the raw, user-supplied input for one directive
type Fields struct {
	Protocol        string `json:"protocol" yaml:"protocol" validate:"required,oneof=tcp udp icmp ip"`
	Source          string `json:"source" yaml:"source" validate:"required,token"`
	SourcePort      string `json:"source_port" yaml:"source_port" validate:"required,token"`
	Destination     string `json:"destination" yaml:"destination" validate:"required,token"`
	DestinationPort string `json:"destination_port" yaml:"destination_port" validate:"required,token"`
	Message         string `json:"message" yaml:"message" validate:"required,message"`
	SID             string `json:"sid" yaml:"sid" validate:"required"`
	Rev             string `json:"rev" yaml:"rev" validate:"required"`
}

// Directive is one validated alert record
type Directive struct {
	Protocol        string
	Source          string
	SourcePort      string
	Destination     string
	DestinationPort string
	Message         string
	SID             uint64
	Rev             uint64
}

// String renders the directive as a single rule line, without newline
func (d Directive) String() string {
	return fmt.Sprintf(`alert %s %s %s -> %s %s (msg:"%s"; sid:%d; rev:%d;)`,
		d.Protocol, d.Source, d.SourcePort, d.Destination, d.DestinationPort,
		d.Message, d.SID, d.Rev)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("token", isToken)
	_ = v.RegisterValidation("message", isMessage)
	return v
}

// isToken accepts a single header token: no whitespace and none of the
// characters that delimit the option block.
func isToken(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || strings.ContainsRune(`();"`, r) {
			return false
		}
	}
	return s != ""
}

// isMessage accepts free text that stays inside msg:"...";
func isMessage(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	for _, r := range s {
		if unicode.IsControl(r) || strings.ContainsRune(`";\`, r) {
			return false
		}
	}
	return strings.TrimSpace(s) != ""
}

// Normalize trims surrounding whitespace and lowercases the protocol
func (f Fields) Normalize() Fields {
	f.Protocol = strings.ToLower(strings.TrimSpace(f.Protocol))
	f.Source = strings.TrimSpace(f.Source)
	f.SourcePort = strings.TrimSpace(f.SourcePort)
	f.Destination = strings.TrimSpace(f.Destination)
	f.DestinationPort = strings.TrimSpace(f.DestinationPort)
	f.Message = strings.TrimSpace(f.Message)
	f.SID = strings.TrimSpace(f.SID)
	f.Rev = strings.TrimSpace(f.Rev)
	return f
}

// Missing returns the names of the fields that are still empty
func (f Fields) Missing() []string {
	var missing []string
	for _, field := range FieldOrder {
		if field.Get(f) == "" {
			missing = append(missing, field.Name)
		}
	}
	return missing
}

// Build validates fields and returns the directive. It never touches the filesystem.
func Build(fields Fields) (Directive, error) {
	fields = fields.Normalize()

	if err := validate.Struct(fields); err != nil {
		return Directive{}, translate(err, fields)
	}

	sid, err := parsePositive(fields.SID)
	if err != nil {
		return Directive{}, errors.Wrapf(err, errors.ErrInvalidSID, "sid %q must be a positive integer", fields.SID).
			WithDetail("field", "sid")
	}

	rev, err := parsePositive(fields.Rev)
	if err != nil {
		return Directive{}, errors.Wrapf(err, errors.ErrInvalidRev, "rev %q must be a positive integer", fields.Rev).
			WithDetail("field", "rev")
	}

	return Directive{
		Protocol:        fields.Protocol,
		Source:          fields.Source,
		SourcePort:      fields.SourcePort,
		Destination:     fields.Destination,
		DestinationPort: fields.DestinationPort,
		Message:         fields.Message,
		SID:             sid,
		Rev:             rev,
	}, nil
}

func parsePositive(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("zero is not positive")
	}
	return n, nil
}

// translate maps the first validator failure onto a coded error
func translate(err error, fields Fields) error {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return errors.Wrap(err, errors.ErrInvalidField, "invalid directive")
	}

	fe := verrs[0]
	name := fieldName(fe.StructField())

	switch fe.StructField() {
	case "Protocol":
		return errors.Newf(errors.ErrInvalidProtocol,
			"protocol %q is not one of %s", fields.Protocol, strings.Join(Protocols, ", ")).
			WithDetail("field", name)
	case "SID":
		return errors.New(errors.ErrInvalidSID, "sid is required").WithDetail("field", name)
	case "Rev":
		return errors.New(errors.ErrInvalidRev, "rev is required").WithDetail("field", name)
	}

	if fe.Tag() == "required" {
		return errors.Newf(errors.ErrInvalidField, "%s is required", name).WithDetail("field", name)
	}
	return errors.Newf(errors.ErrInvalidField, "%s %q contains characters not allowed in a directive", name, fe.Value()).
		WithDetail("field", name)
}
