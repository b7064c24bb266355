package discord

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/marcus-crane/cmuscord/models"
)

const (
	defaultTimeout = 5 * time.Second
	dialTimeout    = 500 * time.Millisecond
	// Activity fields longer than this are rejected by Discord
	maxFieldLength = 128
)

var (
	ErrNotConnected = errors.New("not connected to discord")
	ErrClosed       = errors.New("discord closed the connection")
)

type handshake struct {
	Version  int    `json:"v"`
	ClientID string `json:"client_id"`
}

type command struct {
	Cmd   string       `json:"cmd"`
	Args  activityArgs `json:"args"`
	Nonce string       `json:"nonce"`
}

type activityArgs struct {
	PID      int       `json:"pid"`
	Activity *activity `json:"activity,omitempty"`
}

type activity struct {
	Details    string      `json:"details,omitempty"`
	State      string      `json:"state,omitempty"`
	Timestamps *timestamps `json:"timestamps,omitempty"`
}

type timestamps struct {
	Start int64 `json:"start,omitempty"`
}

type response struct {
	Cmd   string `json:"cmd"`
	Evt   string `json:"evt"`
	Nonce string `json:"nonce"`
	Data  struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"data"`
}

type closeMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// Client speaks the local rich presence IPC protocol of a running Discord
// desktop client. It isn't safe for concurrent use.
type Client struct {
	ClientID string
	Timeout  time.Duration

	dial func() (net.Conn, error)
	conn net.Conn
	pid  int
}

// NewClient only validates the application id, no connection is made until
// Connect is called.
func NewClient(clientID string) (*Client, error) {
	if _, err := strconv.ParseUint(clientID, 10, 64); err != nil {
		return nil, fmt.Errorf("invalid discord application id %q", clientID)
	}
	return &Client{
		ClientID: clientID,
		Timeout:  defaultTimeout,
		dial: func() (net.Conn, error) {
			return dialSocket(dialTimeout)
		},
		pid: os.Getpid(),
	}, nil
}

// Connect dials the IPC socket and performs the handshake. Any existing
// connection is thrown away first.
func (c *Client) Connect() error {
	c.reset()

	conn, err := c.dial()
	if err != nil {
		return err
	}
	c.conn = conn

	if err := c.handshake(); err != nil {
		c.reset()
		return fmt.Errorf("handshake failed: %w", err)
	}
	return nil
}

func (c *Client) handshake() error {
	c.conn.SetDeadline(time.Now().Add(c.Timeout))
	if err := writeFrame(c.conn, opHandshake, handshake{Version: 1, ClientID: c.ClientID}); err != nil {
		return err
	}
	res, err := c.readResponse("")
	if err != nil {
		return err
	}
	if res.Cmd != "DISPATCH" || res.Evt != "READY" {
		return fmt.Errorf("unexpected reply %s/%s", res.Cmd, res.Evt)
	}
	return nil
}

// SetActivity replaces the presence shown for this application. On failure
// the connection is dropped and Connect must be called again.
func (c *Client) SetActivity(a models.Activity) error {
	if c.conn == nil {
		return ErrNotConnected
	}

	act := &activity{
		Details: clip(a.Details),
		State:   clip(a.State),
	}
	if !a.Start.IsZero() {
		act.Timestamps = &timestamps{Start: a.Start.UTC().Unix()}
	}
	cmd := command{
		Cmd:   "SET_ACTIVITY",
		Args:  activityArgs{PID: c.pid, Activity: act},
		Nonce: uuid.NewString(),
	}

	c.conn.SetDeadline(time.Now().Add(c.Timeout))
	if err := writeFrame(c.conn, opFrame, cmd); err != nil {
		c.reset()
		return fmt.Errorf("failed to send activity: %w", err)
	}
	res, err := c.readResponse(cmd.Nonce)
	if err != nil {
		c.reset()
		return fmt.Errorf("failed to set activity: %w", err)
	}
	if res.Evt == "ERROR" {
		return fmt.Errorf("discord rejected activity (%d): %s", res.Data.Code, res.Data.Message)
	}
	return nil
}

// Close says goodbye to Discord, which clears our presence, and releases the
// socket. Closing an unconnected client is a no-op.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	conn := c.conn
	c.conn = nil

	conn.SetDeadline(time.Now().Add(c.Timeout))
	writeErr := writeFrame(conn, opClose, struct{}{})
	return errors.Join(writeErr, conn.Close())
}

// readResponse waits for the reply to the given nonce, answering pings and
// skipping unrelated dispatches along the way. An empty nonce accepts the
// first frame, which is what the handshake wants.
func (c *Client) readResponse(nonce string) (response, error) {
	for {
		op, body, err := readFrame(c.conn)
		if err != nil {
			return response{}, err
		}

		switch op {
		case opPing:
			if err := writeRaw(c.conn, opPong, body); err != nil {
				return response{}, err
			}
			continue
		case opClose:
			var msg closeMessage
			json.Unmarshal(body, &msg)
			return response{}, fmt.Errorf("%w (%d): %s", ErrClosed, msg.Code, msg.Message)
		case opFrame:
		default:
			continue
		}

		var res response
		if err := json.Unmarshal(body, &res); err != nil {
			return response{}, fmt.Errorf("malformed reply: %w", err)
		}
		if nonce == "" || res.Nonce == nonce {
			return res, nil
		}
	}
}

func (c *Client) reset() {
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func writeRaw(conn net.Conn, op opcode, body []byte) error {
	if len(body) == 0 {
		body = nil
	}
	return writeFrame(conn, op, json.RawMessage(body))
}

func clip(s string) string {
	if utf8.RuneCountInString(s) <= maxFieldLength {
		return s
	}
	runes := []rune(s)
	return string(runes[:maxFieldLength])
}
