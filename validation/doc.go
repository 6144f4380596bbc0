// Package validation checks login requests against their struct tags and
// collects field errors for configuration checks.
//
//	if err := validation.Struct(req); err != nil {
//	    fields := validation.FieldNames(err)
//	}
//
//	var errs validation.Errors
//	errs.Require("username", u.Username)
//	errs.Check(len(u.Password) >= 8, "password", "must be at least 8 characters")
//	return errs.Err()
package validation
