package simulation

type Mode string

const (
	ModeByInstallment Mode = "byInstallment"
	ModeByPrincipal   Mode = "byPrincipal"
)

type Request struct {
	Value float64 `json:"value" validate:"required,gt=0"`
	Term  int     `json:"term" validate:"required,gt=0"`
	Day   int     `json:"day" validate:"required,min=1,max=31"`
	Mode  Mode    `json:"mode" validate:"required,oneof=byInstallment byPrincipal"`
}

// Result is advisory; amounts are rounded to cents.
type Result struct {
	Principal   float64 `json:"principal"`
	Installment float64 `json:"installment"`
	Term        int     `json:"term"`
	FactorUsed  string  `json:"factorUsed"`
}
