package html

// ChromeClass is a CSS class applied to the structural elements around
// controls.
type ChromeClass string

const (
	ClassForm    ChromeClass = "dynamic-form"
	ClassSection ChromeClass = "form-section"
	ClassHeader  ChromeClass = "section-header"
	ClassGroup   ChromeClass = "form-group"
	ClassActions ChromeClass = "form-actions"
	ClassErrors  ChromeClass = "form-errors"
)

// Required indicator classes: the danger variant marks a required control
// that is still empty.
const (
	RequiredEmptyClass  = "small text-danger"
	RequiredFilledClass = "small"
)

type chromeClasses struct {
	Form    string `json:"form"`
	Section string `json:"section"`
	Header  string `json:"header"`
	Group   string `json:"group"`
	Actions string `json:"actions"`
	Errors  string `json:"errors"`
}

func defaultChromeClasses() chromeClasses {
	return chromeClasses{
		Form:    string(ClassForm),
		Section: string(ClassSection),
		Header:  string(ClassHeader),
		Group:   string(ClassGroup),
		Actions: string(ClassActions),
		Errors:  string(ClassErrors),
	}
}

// withTokens lets a theme append classes through "class.<name>" tokens, for
// example {"class.form": "needs-validation"}.
func (c chromeClasses) withTokens(tokens map[string]string) chromeClasses {
	add := func(base, key string) string {
		if extra := tokens["class."+key]; extra != "" {
			return base + " " + extra
		}
		return base
	}
	c.Form = add(c.Form, "form")
	c.Section = add(c.Section, "section")
	c.Header = add(c.Header, "header")
	c.Group = add(c.Group, "group")
	c.Actions = add(c.Actions, "actions")
	c.Errors = add(c.Errors, "errors")
	return c
}
