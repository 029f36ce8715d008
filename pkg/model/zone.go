package model

import (
	"github.com/samber/lo"
)

// Zone wraps a model object of TypeZone.
type Zone struct {
	Object
}

// AsZone wraps a raw model object as a Zone.
func AsZone(o Object) Zone {
	return Zone{Object: o}
}

// Storey returns the zone's storey index. Ground floor is 0, basements are
// negative.
func (z Zone) Storey() int {
	i, _ := z.Get(FieldStorey).(int)
	return i
}

func (z Zone) SetStorey(i int) {
	z.Set(FieldStorey, i)
}

// BelowGround reports whether the zone is a basement storey.
func (z Zone) BelowGround() bool {
	b, _ := z.Get(FieldBelowGround).(bool)
	return b
}

func (z Zone) SetBelowGround(b bool) {
	z.Set(FieldBelowGround, b)
}

// Surfaces returns the zone's surfaces in store order.
func (z Zone) Surfaces(store Store) []Surface {
	all := lo.Map(store.ObjectsOf(TypeSurface), func(o Object, _ int) Surface {
		return AsSurface(o)
	})
	return lo.Filter(all, func(s Surface, _ int) bool {
		return s.ZoneName() == z.Name()
	})
}
