package autotimer

import (
	"strings"

	"github.com/mcdev12/speedfocus/go/internal/models"
)

// Bridge tokens sent by the display layer.
const (
	TokenAlert    = "alert"
	TokenAction   = "action"
	TokenTyping   = "typing"
	TokenMoreTime = "moretime"

	legacyTokenPrefix = "spdf:"
	legacyTypingToken = "typeans"
)

// ParseBridgeToken normalizes a raw bridge message. Legacy "spdf:" prefixed
// tokens are accepted.
func ParseBridgeToken(raw string) (string, error) {
	token := strings.ToLower(strings.TrimSpace(raw))
	token = strings.TrimPrefix(token, legacyTokenPrefix)

	switch token {
	case TokenAlert, TokenAction, TokenTyping, TokenMoreTime:
		return token, nil
	case legacyTypingToken:
		return TokenTyping, nil
	}
	return "", ErrUnknownBridgeToken
}

// HandleBridgeToken reacts to a message from the display layer. Unknown
// tokens and tokens for timers that are no longer live are ignored.
func (c *Controller) HandleBridgeToken(raw string) {
	defer c.recoverPanic("HandleBridgeToken")

	token, err := ParseBridgeToken(raw)
	if err != nil {
		c.logger.Debug().Err(err).Str("token", raw).Msg("ignoring bridge message")
		return
	}
	if !c.host.SessionLoaded() {
		c.logger.Debug().Err(ErrSessionUnavailable).Str("token", token).Msg("dropping bridge message")
		return
	}

	switch token {
	case TokenAlert:
		c.fireFromBridge(models.TimerAlert)
	case TokenAction:
		c.fireFromBridge(models.TimerAction)
	case TokenTyping:
		c.OnTyping()
	case TokenMoreTime:
		c.MoreTime()
	}
}

func (c *Controller) fireFromBridge(kind models.TimerKind) {
	lt, ok := c.live[kind]
	if !ok {
		c.logger.Debug().Str("kind", string(kind)).Msg("ignoring bridge fire with no live timer")
		return
	}
	c.timers.Cancel(lt.handle)
	c.fire(kind, lt)
}
