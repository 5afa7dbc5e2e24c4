package experiment

import "github.com/goliatone/go-chaosform/pkg/model"

func action(name string) model.Field {
	return model.Field{Name: "action", Type: model.FieldTypeFixed, Value: name}
}

var networkCommon = model.Spec{
	{
		Name:       "direction",
		Type:       model.FieldTypeSelect,
		Items:      []string{"", "from", "to", "both"},
		Label:      "Direction",
		Value:      "",
		HelperText: "Specifies the network direction",
	},
	{
		Name:       "external_targets",
		Type:       model.FieldTypeLabel,
		Label:      "External Targets",
		Value:      []string{},
		HelperText: "Type string and end with a space to generate the network targets outside k8s",
	},
}

var ioMethods = []string{
	"",
	"lookup",
	"forget",
	"getattr",
	"setattr",
	"readlink",
	"mknod",
	"mkdir",
	"unlink",
	"rmdir",
	"symlink",
	"rename",
	"link",
	"open",
	"read",
	"write",
	"flush",
	"release",
	"fsync",
	"opendir",
	"readdir",
	"releasedir",
	"fsyncdir",
	"statfs",
	"setxattr",
	"getxattr",
	"listxattr",
	"removexattr",
	"access",
	"create",
	"getlk",
	"setlk",
	"bmap",
}

var ioCommon = model.Spec{
	{
		Name:       "volume_path",
		Type:       model.FieldTypeText,
		Label:      "Volume Path",
		Value:      "",
		HelperText: "The mount path of injected volume",
	},
	{
		Name:       "path",
		Type:       model.FieldTypeText,
		Label:      "Path",
		Value:      "",
		HelperText: "Optional. The path of files for injecting. If it's empty, the action will inject into all files.",
	},
	{
		Name:       "container_name",
		Type:       model.FieldTypeText,
		Label:      "Container Name",
		Value:      "",
		HelperText: "Optional. The target container to inject in",
	},
	{
		Name:       "percent",
		Type:       model.FieldTypeNumber,
		Label:      "Percent",
		Value:      100,
		HelperText: "The percentage of injection errors",
	},
	{
		Name:       "methods",
		Type:       model.FieldTypeAutocomplete,
		Items:      ioMethods,
		Label:      "Methods",
		Value:      []string{},
		HelperText: "Optional. The IO methods for injecting IOChaos actions",
	},
}

// correlation builds the correlation field shared by the packet-level
// network actions, nested under the action's group.
func correlation(group string) model.Field {
	return model.Field{
		Name:       "correlation",
		Type:       model.FieldTypeText,
		Label:      "Correlation",
		Value:      "",
		HelperText: "The correlation of " + group,
		Group:      group,
	}
}

func networkCategory(name, key string, own ...model.Field) model.Category {
	spec := append(model.Spec{action(key)}, own...)
	return model.Category{Name: name, Key: key, Spec: model.Compose(spec, networkCommon)}
}

func ioCategory(name, key string, own ...model.Field) model.Category {
	spec := append(model.Spec{action(key)}, own...)
	return model.Category{Name: name, Key: key, Spec: model.Compose(spec, ioCommon)}
}

func builtinTargets() []model.Target {
	return []model.Target{
		{
			Kind:    string(KindPodChaos),
			Name:    "Pod Lifecycle",
			NameKey: "newE.target.pod.title",
			Icon:    "pod",
			Categories: []model.Category{
				{Name: "Pod Failure", Key: "pod-failure", Spec: model.Spec{action("pod-failure")}},
				{Name: "Pod Kill", Key: "pod-kill", Spec: model.Spec{action("pod-kill")}},
				{
					Name: "Container Kill",
					Key:  "container-kill",
					Spec: model.Spec{
						action("container-kill"),
						{
							Name:       "container_name",
							Type:       model.FieldTypeText,
							Label:      "Container Name",
							Value:      "",
							HelperText: "Fill the container name",
						},
					},
				},
			},
		},
		{
			Kind:    string(KindNetworkChaos),
			Name:    "Network",
			NameKey: "newE.target.network.title",
			Icon:    "network",
			Categories: []model.Category{
				networkCategory("Partition", "partition"),
				networkCategory("Loss", "loss",
					model.Field{
						Name:       "loss",
						Type:       model.FieldTypeText,
						Label:      "Loss",
						Value:      "",
						HelperText: "The percentage of packet loss",
						Group:      "loss",
					},
					correlation("loss"),
				),
				networkCategory("Delay", "delay",
					model.Field{
						Name:       "latency",
						Type:       model.FieldTypeText,
						Label:      "Latency",
						Value:      "",
						HelperText: "The latency of delay",
						Group:      "delay",
					},
					model.Field{
						Name:       "jitter",
						Type:       model.FieldTypeText,
						Label:      "Jitter",
						Value:      "",
						HelperText: "The jitter of delay",
						Group:      "delay",
					},
					correlation("delay"),
				),
				networkCategory("Duplicate", "duplicate",
					model.Field{
						Name:       "duplicate",
						Type:       model.FieldTypeText,
						Label:      "Duplicate",
						Value:      "",
						HelperText: "The percentage of packet duplication",
						Group:      "duplicate",
					},
					correlation("duplicate"),
				),
				networkCategory("Corrupt", "corrupt",
					model.Field{
						Name:       "corrupt",
						Type:       model.FieldTypeText,
						Label:      "Corrupt",
						Value:      "",
						HelperText: "The percentage of packet corruption",
						Group:      "corrupt",
					},
					correlation("corrupt"),
				),
				networkCategory("Bandwidth", "bandwidth",
					model.Field{
						Name:       "rate",
						Type:       model.FieldTypeText,
						Label:      "Rate",
						Value:      "",
						HelperText: "The rate allows bps, kbps, mbps, gbps, tbps unit. For example, bps means bytes per second",
						Group:      "bandwidth",
					},
					model.Field{
						Name:       "limit",
						Type:       model.FieldTypeNumber,
						Label:      "Limit",
						Value:      0,
						HelperText: "The number of bytes that can be queued waiting for tokens to become available",
						Group:      "bandwidth",
					},
					model.Field{
						Name:       "buffer",
						Type:       model.FieldTypeNumber,
						Label:      "Buffer",
						Value:      0,
						HelperText: "The maximum amount of bytes that tokens can be available instantaneously",
						Group:      "bandwidth",
					},
					model.Field{
						Name:       "minburst",
						Type:       model.FieldTypeNumber,
						Label:      "Min burst",
						Value:      0,
						HelperText: "The size of the peakrate bucket",
						Group:      "bandwidth",
					},
					model.Field{
						Name:       "peakrate",
						Type:       model.FieldTypeNumber,
						Label:      "Peak rate",
						Value:      0,
						HelperText: "The maximum depletion rate of the bucket",
						Group:      "bandwidth",
					},
				),
			},
		},
		{
			Kind:    string(KindIoChaos),
			Name:    "File System I/O",
			NameKey: "newE.target.io.title",
			Icon:    "io",
			Categories: []model.Category{
				ioCategory("Latency", "latency", model.Field{
					Name:       "delay",
					Type:       model.FieldTypeText,
					Label:      "Delay",
					Value:      "",
					HelperText: "The value of delay of I/O operations. If it's empty, the operator will generate a value for it randomly.",
					InputProps: map[string]any{"min": 0},
				}),
				ioCategory("Fault", "fault", model.Field{
					Name:       "errno",
					Type:       model.FieldTypeNumber,
					Label:      "Errno",
					Value:      0,
					HelperText: "The error code returned by I/O operators. By default, it returns a random error code",
				}),
				ioCategory("AttrOverride", "attrOverride", model.Field{
					Name:  "attr",
					Type:  model.FieldTypeLabel,
					IsKV:  true,
					Label: "Attr",
					Value: []string{},
				}),
			},
		},
		{
			Kind:    string(KindKernelChaos),
			Name:    "Linux Kernel",
			NameKey: "newE.target.kernel.title",
			Icon:    "kernel",
			Spec: model.Spec{
				{
					Name: "fail_kern_request",
					Type: model.FieldTypeFixed,
					Value: map[string]any{
						"callchain":   []any{},
						"failtype":    0,
						"headers":     []any{},
						"probability": 0,
						"times":       0,
					},
				},
			},
		},
		{
			Kind:    string(KindTimeChaos),
			Name:    "Clock Skew",
			NameKey: "newE.target.time.title",
			Icon:    "time",
			Spec: model.Spec{
				{
					Name:       "time_offset",
					Type:       model.FieldTypeText,
					Label:      "Offset",
					Value:      "",
					HelperText: "Fill the time offset",
				},
				{
					Name:       "clock_ids",
					Type:       model.FieldTypeLabel,
					Label:      "Clock ids",
					Value:      []string{},
					HelperText: "Optional. Type string and end with a space to generate the clock ids. If it's empty, it will be set to ['CLOCK_REALTIME']",
				},
				{
					Name:       "container_names",
					Type:       model.FieldTypeLabel,
					Label:      "Affected container names",
					Value:      []string{},
					HelperText: "Optional. Type string and end with a space to generate the container names. If it's empty, all containers will be injected",
				},
			},
		},
		{
			Kind:    string(KindStressChaos),
			Name:    "Stress CPU/Memory",
			NameKey: "newE.target.stress.title",
			Icon:    "stress",
			Spec: model.Spec{
				{
					Name: "stressors",
					Type: model.FieldTypeFixed,
					Value: map[string]any{
						"cpu": map[string]any{
							"workers": 1,
							"load":    0,
							"options": []any{},
						},
						"memory": map[string]any{
							"workers": 1,
							"options": []any{},
						},
					},
				},
				{Name: "stressng_stressors", Type: model.FieldTypeFixed, Value: ""},
				{Name: "container_name", Type: model.FieldTypeFixed, Value: ""},
			},
		},
	}
}
