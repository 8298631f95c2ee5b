package domain

// Counts aggregates row outcomes for one entity type.
type Counts struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Failure records one failed row so the caller can surface it to the user.
type Failure struct {
	Entity   EntityType `json:"entityType"`
	RowIndex int        `json:"rowIndex"`
	Reason   string     `json:"reason"`
}

// Report is the full result of an import run. Row failures live here; they
// never abort the run.
type Report struct {
	PerEntity map[EntityType]*Counts `json:"perEntity"`
	Failures  []Failure              `json:"failures"`
}

func NewReport() *Report {
	perEntity := make(map[EntityType]*Counts, len(EntityTypes))
	for _, entity := range EntityTypes {
		perEntity[entity] = &Counts{}
	}
	return &Report{PerEntity: perEntity}
}

func (r *Report) Add(entity EntityType, rowIndex int, outcome Outcome) {
	counts, ok := r.PerEntity[entity]
	if !ok {
		counts = &Counts{}
		r.PerEntity[entity] = counts
	}
	switch outcome.Kind {
	case OutcomeCreated:
		counts.Created++
	case OutcomeUpdated:
		counts.Updated++
	case OutcomeSkipped:
		counts.Skipped++
	case OutcomeFailed:
		counts.Failed++
		r.Failures = append(r.Failures, Failure{
			Entity:   entity,
			RowIndex: rowIndex,
			Reason:   outcome.Reason,
		})
	}
}

// TotalFailed is the number of failed rows across all entity types.
func (r *Report) TotalFailed() int {
	total := 0
	for _, counts := range r.PerEntity {
		total += counts.Failed
	}
	return total
}
