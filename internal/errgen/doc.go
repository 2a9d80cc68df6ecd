// Package errgen derives error metadata methods for sealed error interfaces.
//
// An error "enum" is an interface carrying one unexported marker method.
// Every named type of the package that declares the marker method is a
// variant of the enum. The enum opts in to a generator with a directive in
// its doc comment and every variant carries its metadata in a directive of
// its own:
//
//	//errgen:derive ResponseError
//	type TestError interface {
//		error
//		testError()
//	}
//
//	//errgen:response_error(status_code = 500, error_code = 1)
//	type TestErrorUnexpected struct{ Err error }
//
//	func (TestErrorUnexpected) testError() {}
//
// Two generators are available:
//
//   - ResponseError emits ErrorCode, StatusCode and ErrorResponse on every
//     variant, making each variant an httperr.ResponseError.
//   - UseCaseError emits only the error code method. It is named ErrorCode
//     when the enum is exported and errorCode otherwise.
//
// Generation is all-or-nothing per enum: the first invalid annotation aborts
// the enum with a *Diagnostic that points at the offending source.
package errgen
