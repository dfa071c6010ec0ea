package diagnosis

// Kind tells how a nursing diagnosis relates to the symptoms cited for it.
type Kind string

const (
	// KindRisk diagnoses (names prefixed "Risco") cite related factors.
	KindRisk Kind = "risk"
	// KindProblem diagnoses cite defining characteristics.
	KindProblem Kind = "problem"
)

// CustomKey is the SelectionSet key for a free-text diagnosis typed by the user.
const CustomKey = "Personalizado"
