package entity

// Stage describes one step of the sales pipeline shared by leads and deals.
type Stage struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Color string `json:"color"`
	Order int    `json:"order"`
}

const (
	StageNew         = "new"
	StageContacted   = "contacted"
	StagePending     = "pendiente"
	StageProposal    = "propuesta"
	StageNegotiation = "negociacion"
	StageWon         = "ganada"
	StageLost        = "perdida"
)

// Ordem só importa para a UI; qualquer etapa pode ir para qualquer outra.
var stages = [...]Stage{
	{Key: StageNew, Label: "Nuevo", Color: "#3b82f6", Order: 0},
	{Key: StageContacted, Label: "Contactado", Color: "#06b6d4", Order: 1},
	{Key: StagePending, Label: "Pendiente", Color: "#f59e0b", Order: 2},
	{Key: StageProposal, Label: "Propuesta enviada", Color: "#8b5cf6", Order: 3},
	{Key: StageNegotiation, Label: "En negociación", Color: "#ec4899", Order: 4},
	{Key: StageWon, Label: "Ganada", Color: "#22c55e", Order: 5},
	{Key: StageLost, Label: "Perdida", Color: "#ef4444", Order: 6},
}

var stagesByKey = func() map[string]Stage {
	m := make(map[string]Stage, len(stages))
	for _, s := range stages {
		m[s.Key] = s
	}
	return m
}()

// Stages returns the registry in display order. The slice is a copy.
func Stages() []Stage {
	out := make([]Stage, len(stages))
	copy(out, stages[:])
	return out
}

// DefaultStage is the first registered stage.
func DefaultStage() Stage {
	return stages[0]
}

// LookupStage never fails: unknown keys resolve to DefaultStage.
func LookupStage(key string) Stage {
	if s, ok := stagesByKey[key]; ok {
		return s
	}
	return DefaultStage()
}

func IsKnownStage(key string) bool {
	_, ok := stagesByKey[key]
	return ok
}
