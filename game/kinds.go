package game

// EnemyKind selects an enemy's glyph
type EnemyKind int

const (
	KindGhost   EnemyKind = 0
	KindPumpkin EnemyKind = 1
	KindBat     EnemyKind = 2
)

var enemyKindNames = [...]string{"ghost", "pumpkin", "bat"}

func (k EnemyKind) String() string {
	if k < 0 || int(k) >= len(enemyKindNames) {
		return "unknown"
	}
	return enemyKindNames[k]
}

// EnemyKindForRow cycles ghost, pumpkin, bat down the grid
func EnemyKindForRow(row int) EnemyKind {
	return EnemyKind(row % len(enemyKindNames))
}

// PowerKind identifies a power-up and the augmentation it grants
type PowerKind int

const (
	PowerNone   PowerKind = 0
	PowerBeam   PowerKind = 1
	PowerSpread PowerKind = 2
	PowerShield PowerKind = 3
)

var powerKindNames = [...]string{"none", "beam", "spread", "shield"}

func (k PowerKind) String() string {
	if k < 0 || int(k) >= len(powerKindNames) {
		return "unknown"
	}
	return powerKindNames[k]
}

// droppablePowers are the kinds a UFO can carry
var droppablePowers = [...]PowerKind{PowerBeam, PowerSpread, PowerShield}

func randomPower(rng Rand) PowerKind {
	return droppablePowers[rng.Intn(len(droppablePowers))]
}
