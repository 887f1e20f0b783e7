package types

// JobDescription is the structured output of the job analyst agent.
// The cardinality tags encode the minimum shape a posting must have before
// it can be shown to the approver: at least three responsibilities, three
// qualifications and two offerings.
type JobDescription struct {
	Title            string   `json:"title" validate:"required"`
	Company          string   `json:"company" validate:"required"`
	Responsibilities []string `json:"responsibilities" validate:"min=3,dive,required"`
	Qualifications   []string `json:"qualifications" validate:"min=3,dive,required"`
	Offerings        []string `json:"offerings" validate:"min=2,dive,required"`
}
