// Package validator composes field rules and reports every failure at once.
//
//	err := validator.Apply(
//		validator.Required("name", in.Name),
//		validator.ValidEmail("admin_email", in.AdminEmail),
//		validator.ValidCurrencyCode("currency", in.Currency),
//	)
//	if errs := validator.ExtractValidationErrors(err); errs != nil {
//		// errs.Map() is suitable for a 400 response body
//	}
package validator
