package repo

// ExtraKind identifica qual coluna de dados extras do perfil está sendo lida
// ou gravada. O valor é sempre texto opaco para o serviço (JSON ou nota livre).
type ExtraKind string

const (
	ExtraSettings ExtraKind = "settings"
	ExtraGoals    ExtraKind = "goals"
	ExtraNotes    ExtraKind = "notes"
)

// Valid informa se o tipo de dado extra é um dos aceitos.
func (k ExtraKind) Valid() bool {
	switch k {
	case ExtraSettings, ExtraGoals, ExtraNotes:
		return true
	}
	return false
}

// coluna correspondente em profile_extras; só valores de ExtraKind validados
// chegam aqui, nunca entrada do usuário direto no SQL
func (k ExtraKind) column() string {
	switch k {
	case ExtraSettings:
		return "settings_json"
	case ExtraGoals:
		return "goals_json"
	default:
		return "notes"
	}
}
