package pairing

import "fmt"

// Strategy selects the pairing algorithm. Strategies never fall back to one
// another: the caller's selection always wins, even when another strategy
// would have claimed a contested video differently.
type Strategy int

const (
	// StrategyOrder pairs the i-th photo (by filename) with the i-th video
	// (by filesystem time). Meant for files redistributed through messaging
	// apps, where capture metadata is unreliable but arrival order holds.
	StrategyOrder Strategy = iota
	// StrategyTime claims every video inside a tolerance window after each
	// photo's capture instant.
	StrategyTime
	// StrategyImage scores sampled video frames against photos and assigns
	// by visual similarity.
	StrategyImage
)

// ParseStrategy converts the user-facing mode selector.
func ParseStrategy(mode string) (Strategy, error) {
	switch mode {
	case "order":
		return StrategyOrder, nil
	case "time":
		return StrategyTime, nil
	case "image":
		return StrategyImage, nil
	default:
		return StrategyOrder, fmt.Errorf("unknown pairing mode %q (want order, time, or image)", mode)
	}
}

func (s Strategy) String() string {
	switch s {
	case StrategyTime:
		return "time"
	case StrategyImage:
		return "image"
	default:
		return "order"
	}
}
