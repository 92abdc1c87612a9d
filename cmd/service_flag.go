package cmd

import (
	"github.com/spf13/pflag"

	"github.com/queueing-sim/queueing-sim/sim"
)

// serviceKindValue lets --service reject anything but M or D at parse time.
type serviceKindValue struct {
	kind *sim.ServiceKind
}

var _ pflag.Value = serviceKindValue{}

func newServiceKindValue(def sim.ServiceKind, p *sim.ServiceKind) serviceKindValue {
	*p = def
	return serviceKindValue{kind: p}
}

func (v serviceKindValue) String() string {
	if v.kind == nil {
		return ""
	}
	return string(*v.kind)
}

func (v serviceKindValue) Set(s string) error {
	kind, err := sim.ParseServiceKind(s)
	if err != nil {
		return err
	}
	*v.kind = kind
	return nil
}

func (v serviceKindValue) Type() string {
	return "M|D"
}
