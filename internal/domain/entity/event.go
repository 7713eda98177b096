package entity

// EventType names a navigation lifecycle notification.
type EventType string

const (
	EventTabActivated    EventType = "TAB_ACTIVATED"
	EventTabClosed       EventType = "TAB_CLOSED"
	EventTabOpened       EventType = "TAB_OPENED"
	EventTabPinned       EventType = "TAB_PINNED"
	EventTabUnpinned     EventType = "TAB_UNPINNED"
	EventTabReordered    EventType = "TAB_REORDERED"
	EventSubTabActivated EventType = "SUBTAB_ACTIVATED"

	// Emitted by hosts through the bus, never by the reducer.
	EventTabRefreshed EventType = "TAB_REFRESHED"
	EventTabError     EventType = "TAB_ERROR"
	EventTabLoaded    EventType = "TAB_LOADED"
)

// Event is delivered to bus subscribers after a transition.
type Event struct {
	Type      EventType
	TabID     TabID
	SubTabID  SubTabID
	Timestamp int64 // unix millis
	TabOrder  []TabID
	Data      any
}
