package engine

import (
	"github.com/BurntSushi/toml"

	"github.com/lschess/laserchess/internal/eval"
)

// WinScore marks a forced win; a score within MaxPly of +/-WinScore is
// treated as "mate in N" for TT ply-normalization (AdjustScoreToTT and
// AdjustScoreFromTT). MateScore is declared but not read by the search.
// MaxPly bounds recursion depth and every ply-indexed table (killers,
// search stack).
const (
	InfScore  = 32700
	WinScore  = 32000
	MateScore = 29000
	MaxPly    = 128

	// DrawScore is the magnitude used for a detected repetition. It is
	// signed by ply parity rather than scored flat zero, so a losing side
	// still steers toward a draw and a winning side still steers away
	// from one instead of treating the two as indifferent.
	DrawScore = 1
)

// Tunables holds every knob the search reads once at search start. TOML
// keys are upper-case so a config file can be copied verbatim from notes
// taken against the original tunable names.
type Tunables struct {
	Randomize int `toml:"RANDOMIZE"`
	UseKO     bool `toml:"USE_KO"`

	HAttack     int `toml:"HATTACK"`
	PBetween int `toml:"PBETWEEN"`
	// PCentral is decoded but not read: the PCENTRAL weight is fixed
	// inside eval's pcentralTable and has no entry in eval.Weights.
	PCentral    int `toml:"PCENTRAL"`
	KFace       int `toml:"KFACE"`
	Kaggressive int `toml:"KAGGRESSIVE"`
	Mobility    int `toml:"MOBILITY"`
	PawnPin     int `toml:"PAWNPIN"`

	DetectDraws bool `toml:"DETECT_DRAWS"`

	FutDepth int `toml:"FUT_DEPTH"`
	LMR_R1   int `toml:"LMR_R1"`
	LMR_R2   int `toml:"LMR_R2"`
	HMB      int `toml:"HMB"`

	AbortCheckPeriod int  `toml:"ABORT_CHECK_PERIOD"`
	EnableTables     bool `toml:"ENABLE_TABLES"`
	DepthThreshold   int  `toml:"DEPTH_THRESHOLD"`
	TraceMoves       bool `toml:"TRACE_MOVES"`

	TTSizeMB int `toml:"TT_SIZE_MB"`
}

// DefaultTunables are the coded defaults a command loop falls back to
// absent a config file.
func DefaultTunables() Tunables {
	return Tunables{
		Randomize: 0,
		UseKO:     true,

		HAttack:     eval.DefaultWeights().HAttack,
		PBetween:    eval.DefaultWeights().PBetween,
		KFace:       eval.DefaultWeights().KFace,
		Kaggressive: eval.DefaultWeights().Kaggressive,
		Mobility:    eval.DefaultWeights().Mobility,
		PawnPin:     eval.DefaultWeights().PawnPin,

		DetectDraws: true,

		FutDepth: 3,
		LMR_R1:   4,
		LMR_R2:   8,
		HMB:      50,

		AbortCheckPeriod: 4096,
		EnableTables:     true,
		DepthThreshold:   3,
		TraceMoves:       false,

		TTSizeMB: 64,
	}
}

// LoadTunables reads path as TOML, starting from DefaultTunables so any
// key the file omits keeps its coded default. A missing or unreadable
// path is not an error: the caller gets coded defaults and a WARNING is
// logged, mirroring the original engine's always-runnable posture.
func LoadTunables(path string) Tunables {
	t := DefaultTunables()
	if path == "" {
		return t
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		logger.Warningf("config: could not load %s, using defaults: %v", path, err)
		return DefaultTunables()
	}
	return t
}

// evalWeights projects the heuristic-facing subset of t into the shape
// eval.Evaluate expects.
func (t Tunables) evalWeights() eval.Weights {
	return eval.Weights{
		PBetween:    t.PBetween,
		KFace:       t.KFace,
		Kaggressive: t.Kaggressive,
		HAttack:     t.HAttack,
		Mobility:    t.Mobility,
		PawnPin:     t.PawnPin,
		Randomize:   t.Randomize,
	}
}
