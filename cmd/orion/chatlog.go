package main

import (
	"github.com/opd-ai/orion/events"
	"github.com/opd-ai/orion/extension"
	"github.com/sirupsen/logrus"
)

// chatLog logs chat, handshakes and session lifecycles. Its handlers run at
// Monitor so they see the final verdict of every event.
type chatLog struct {
	logger logrus.FieldLogger
}

func (c *chatLog) Name() string { return "chatlog" }

func (c *chatLog) Initialize(k *events.Kernel, owner string) error {
	events.On(k, owner, events.Monitor, func(e *events.ChatEvent) error {
		c.logger.WithFields(logrus.Fields{
			"session":  e.Session,
			"command":  e.Module.Command,
			"text":     e.Module.Text,
			"canceled": e.IsCanceled(),
		}).Info("Chat")
		return nil
	})
	events.On(k, owner, events.Monitor, func(e *events.ClientConnectEvent) error {
		c.logger.WithFields(logrus.Fields{
			"session":  e.Session,
			"version":  e.Packet.Version,
			"canceled": e.IsCanceled(),
		}).Info("Client handshake")
		return nil
	})
	events.On(k, owner, events.Monitor, func(e *events.SessionOpenEvent) error {
		c.logger.WithFields(logrus.Fields{
			"session": e.Session,
			"remote":  e.RemoteAddr,
		}).Info("Session open")
		return nil
	})
	events.On(k, owner, events.Monitor, func(e *events.SessionCloseEvent) error {
		entry := c.logger.WithField("session", e.Session)
		if e.Err != nil {
			entry = entry.WithField("error", e.Err.Error())
		}
		entry.Info("Session close")
		return nil
	})
	return nil
}

// builtins maps the names accepted in ORION_EXTENSIONS to constructors.
func builtins(logger logrus.FieldLogger) map[string]func() extension.Extension {
	return map[string]func() extension.Extension{
		"chatlog": func() extension.Extension {
			return &chatLog{logger: logger.WithField("extension", "chatlog")}
		},
	}
}
