package experiment

import (
	v "github.com/goliatone/go-chaosform/pkg/validation"
)

// builtinRules lists the structural rules checked before submission. Pairs
// without an entry are accepted as-is.
func builtinRules() map[Kind]map[string]v.Rule {
	return map[Kind]map[string]v.Rule{
		KindPodChaos: {
			"container-kill": v.Object(
				v.Prop("container_name", v.String().IsRequired("The container name is required")),
			),
		},
		KindNetworkChaos: {
			"partition": v.Object(
				v.Prop("direction", v.String().IsRequired("The direction is required")),
			),
			"loss": v.Object(
				v.Prop("loss", v.Object(v.Prop("loss", v.String().IsRequired("The loss is required")))),
			),
			"delay": v.Object(
				v.Prop("delay", v.Object(v.Prop("latency", v.String().IsRequired("The latency is required")))),
			),
			"duplicate": v.Object(
				v.Prop("duplicate", v.Object(v.Prop("duplicate", v.String().IsRequired("The duplicate is required")))),
			),
			"corrupt": v.Object(
				v.Prop("corrupt", v.Object(v.Prop("corrupt", v.String().IsRequired("The corrupt is required")))),
			),
			"bandwidth": v.Object(
				v.Prop("bandwidth", v.Object(v.Prop("rate", v.String().IsRequired("The rate of bandwidth is required")))),
			),
		},
		KindIoChaos: {
			"latency": v.Object(
				v.Prop("delay", v.String().IsRequired("The delay is required")),
			),
			"fault": v.Object(
				v.Prop("errno", v.Number().Min(0, "").IsRequired("The errno is required")),
			),
			"attrOverride": v.Object(
				v.Prop("attr", v.Array(v.String()).IsRequired("The attr is required")),
			),
		},
		KindTimeChaos: {
			DefaultCategory: v.Object(
				v.Prop("time_offset", v.String().IsRequired("The time offset is required")),
			),
		},
	}
}
