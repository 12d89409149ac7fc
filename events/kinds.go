package events

import (
	"github.com/opd-ai/orion/packets"
)

// PacketReceiveEvent is raised for every packet a session decodes, before it
// is forwarded. Handlers may replace or mutate Packet; canceling drops it.
type PacketReceiveEvent struct {
	Cancellation
	Session   int
	Direction packets.Direction
	Packet    packets.Packet
}

func (*PacketReceiveEvent) EventName() string { return "packet-receive" }

// PacketSendEvent is raised for every packet a session injects on its own
// account rather than relaying. Canceling suppresses the send.
type PacketSendEvent struct {
	Cancellation
	Session   int
	Direction packets.Direction
	Packet    packets.Packet
}

func (*PacketSendEvent) EventName() string { return "packet-send" }

// ModuleReceiveEvent is raised after PacketReceiveEvent for module packets.
type ModuleReceiveEvent struct {
	Cancellation
	Session   int
	Direction packets.Direction
	Packet    *packets.ModulePacket
}

func (*ModuleReceiveEvent) EventName() string { return "module-receive" }

// ClientConnectEvent is raised when a client opens the protocol handshake.
type ClientConnectEvent struct {
	Cancellation
	Session int
	Packet  *packets.ClientConnect
}

func (*ClientConnectEvent) EventName() string { return "client-connect" }

// ClientPasswordEvent is raised when a client answers a password request.
type ClientPasswordEvent struct {
	Cancellation
	Session int
	Packet  *packets.ClientPassword
}

func (*ClientPasswordEvent) EventName() string { return "client-password" }

// ChatEvent is raised when a client sends a chat module.
type ChatEvent struct {
	Cancellation
	Session int
	Module  *packets.ChatModule
}

func (*ChatEvent) EventName() string { return "chat" }

// SessionOpenEvent is raised once a session has a slot and both peers.
type SessionOpenEvent struct {
	Session    int
	RemoteAddr string
}

func (*SessionOpenEvent) EventName() string { return "session-open" }

// SessionCloseEvent is raised when a session ends. Err is nil for a clean
// close and wraps the fault otherwise.
type SessionCloseEvent struct {
	Session int
	Err     error
}

func (*SessionCloseEvent) EventName() string { return "session-close" }

// ExtensionLoadEvent is raised after an extension has initialized.
type ExtensionLoadEvent struct {
	Name string
}

func (*ExtensionLoadEvent) EventName() string { return "extension-load" }

// ExtensionUnloadEvent is raised after an extension's handlers were removed.
type ExtensionUnloadEvent struct {
	Name    string
	Removed int
}

func (*ExtensionUnloadEvent) EventName() string { return "extension-unload" }
