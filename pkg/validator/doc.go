// Package validator builds declarative input checks from small Rule values.
//
// Each rule constructor returns a Rule holding a Check func and the
// ValidationError to report when the check fails. Apply evaluates rules in
// order and collects every failure into ValidationErrors, so a form can report
// all bad fields at once.
//
//	err := validator.Apply(
//	    validator.Required("name", form.Name),
//	    validator.ValidEmail("email", form.Email),
//	    validator.MinNum("party_size", form.PartySize, 1),
//	)
//	if verrs := validator.ExtractValidationErrors(err); verrs != nil {
//	    for _, field := range verrs.Fields() { ... }
//	}
//
// Optional fields are expressed with When, which only evaluates the wrapped
// rule if the value was supplied.
package validator
