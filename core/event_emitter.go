package assistant

import "github.com/koscakluka/calchat/core/events"

type eventEmitter func(events.Event)

func noopEventEmitter(events.Event) {}
