package tournament

// Kind tells individual and team entities apart.
type Kind string

const (
	KindIndividual Kind = "individual"
	KindTeam       Kind = "team"
)

// Entity is a ranked participant of a tournament. It is either an Individual
// or a Team; consumers type-switch on the concrete value.
type Entity interface {
	EntityID() string
	DisplayName() string
	DisplayColor() string
	Kind() Kind

	entity()
}

// Individual is a single player.
type Individual struct {
	ID    string
	Name  string
	Color string
}

func (i Individual) EntityID() string     { return i.ID }
func (i Individual) DisplayName() string  { return i.Name }
func (i Individual) DisplayColor() string { return i.Color }
func (Individual) Kind() Kind             { return KindIndividual }
func (Individual) entity()                {}

// Team groups several players that score as one entity.
type Team struct {
	ID      string
	Name    string
	Color   string
	Members []string
}

func (t Team) EntityID() string     { return t.ID }
func (t Team) DisplayName() string  { return t.Name }
func (t Team) DisplayColor() string { return t.Color }
func (Team) Kind() Kind             { return KindTeam }
func (Team) entity()                {}
