package dto

// Defaults applied when the request omits k or lambda.
const (
	DefaultK      = 20
	DefaultLambda = 2.7
)

// OptimizeRequest is the JSON body of POST /api/v1/optimize.
//
// K and Lambda are accepted for compatibility and currently have no effect
// on the computation; weights are always equal.
type OptimizeRequest struct {
	Companies []string `json:"companies" example:"Apple Inc.,Microsoft Corporation"`
	K         *int     `json:"k,omitempty" example:"20"`
	Lambda    *float64 `json:"lambda,omitempty" example:"2.7"`
}

// KOrDefault returns K, or DefaultK when it was not sent.
func (r OptimizeRequest) KOrDefault() int {
	if r.K == nil {
		return DefaultK
	}
	return *r.K
}

// LambdaOrDefault returns Lambda, or DefaultLambda when it was not sent.
func (r OptimizeRequest) LambdaOrDefault() float64 {
	if r.Lambda == nil {
		return DefaultLambda
	}
	return *r.Lambda
}
