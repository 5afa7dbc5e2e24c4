package experiment

import (
	"fmt"
	"strings"
)

// Kind identifies an experiment type.
type Kind string

const (
	KindPodChaos     Kind = "PodChaos"
	KindNetworkChaos Kind = "NetworkChaos"
	KindIoChaos      Kind = "IoChaos"
	KindKernelChaos  Kind = "KernelChaos"
	KindTimeChaos    Kind = "TimeChaos"
	KindStressChaos  Kind = "StressChaos"
)

// DefaultCategory keys the rules of kinds that have no categories.
const DefaultCategory = "default"

// Kinds lists every supported kind in display order.
func Kinds() []Kind {
	return []Kind{
		KindPodChaos,
		KindNetworkChaos,
		KindIoChaos,
		KindKernelChaos,
		KindTimeChaos,
		KindStressChaos,
	}
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(raw string) (Kind, error) {
	trimmed := strings.TrimSpace(raw)
	for _, kind := range Kinds() {
		if strings.EqualFold(trimmed, string(kind)) {
			return kind, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, raw)
}

func (k Kind) String() string {
	return string(k)
}
