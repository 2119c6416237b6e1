package validation

// Form is the template-facing view of a form: submitted values plus errors.
// An unbound form has not been submitted yet.
type Form struct {
	Bound  bool
	Values map[string]string
	Errors FormErrors
}

func Unbound(initial map[string]string) Form {
	return Form{Values: initial}
}

// Bind builds a bound form from submitted values and the error returned by
// Validate or by a service. Errors other than FormErrors are ignored.
func Bind(values map[string]string, err error) Form {
	f := Form{Bound: true, Values: values}
	if fe, ok := AsFormErrors(err); ok {
		f.Errors = fe
	}
	return f
}

func (f Form) Value(field string) string {
	return f.Values[field]
}

func (f Form) Error(field string) string {
	return f.Errors[field]
}

func (f Form) NonFieldError() string {
	return f.Errors[NonFieldErrors]
}

func (f Form) HasErrors() bool {
	return len(f.Errors) > 0
}

// InputClass returns the CSS classes for an input: invalid fields are marked
// after submission and valid ones too, except passwords, which are never echoed.
func (f Form) InputClass(field string, password bool) string {
	css := ""
	if f.Bound {
		if _, bad := f.Errors[field]; bad {
			css = "is-invalid"
		} else if !password {
			css = "is-valid"
		}
	}
	return "form-control " + css
}
