package mock

import (
	"fmt"
	"maps"
	"slices"

	"github.com/fwojciec/pagetext"
)

var _ pagetext.EventHandler = (*EventRecorder)(nil)

// EventRecorder is a pagetext.EventHandler that records every event as a
// short string: "<name k=v>", "</name>" or "text".
type EventRecorder struct {
	Events []string
}

func (r *EventRecorder) StartTag(name string, attrs pagetext.Attributes) {
	s := "<" + name
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		if v := attrs[k]; v != nil {
			s += fmt.Sprintf(" %s=%s", k, *v)
		} else {
			s += " " + k
		}
	}
	r.Events = append(r.Events, s+">")
}

func (r *EventRecorder) EndTag(name string) {
	r.Events = append(r.Events, "</"+name+">")
}

func (r *EventRecorder) Text(data string) {
	r.Events = append(r.Events, data)
}
