// Package realtime 通过websocket把后端的数据变更推送给管理后台
package realtime

import (
	"bytes"
	"net/http"
	"sort"
	"sync"
	"time"

	"robodesk/internal/gateway"
	"robodesk/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 100
)

// ClientMessage 客户端请求的消息格式
type ClientMessage struct {
	Action string         `json:"action"` // subscribe | unsubscribe
	Table  string         `json:"table"`
	Filter gateway.Filter `json:"filter"`
}

// ServerMessage 发给客户端的消息，Type 为 ack、error 或 change
type ServerMessage struct {
	Type   string          `json:"type"`
	Table  string          `json:"table,omitempty"`
	Error  string          `json:"error,omitempty"`
	Change *gateway.Change `json:"change,omitempty"`
}

type clientConn struct {
	conn *websocket.Conn
	send chan []byte // 异步发送通道
	done chan struct{}

	mu   sync.Mutex
	subs map[string]gateway.Subscription // 订阅key -> 订阅
}

type Handler struct {
	gw       gateway.Gateway
	tables   map[string]struct{}
	upgrader websocket.Upgrader
}

// NewHandler tables 为允许订阅的表
func NewHandler(gw gateway.Gateway, tables []string) *Handler {
	h := &Handler{
		gw:     gw,
		tables: make(map[string]struct{}, len(tables)),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true }, // 允许跨域
		},
	}
	for _, t := range tables {
		h.tables[t] = struct{}{}
	}
	return h
}

// ServeWS 连接关闭时取消该连接的全部订阅
func (h *Handler) ServeWS(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warnf("realtime: upgrade: %v", err)
		return
	}
	client := &clientConn{
		conn: conn,
		send: make(chan []byte, sendBuffer),
		done: make(chan struct{}),
		subs: make(map[string]gateway.Subscription),
	}
	defer func() {
		client.unsubscribeAll()
		close(client.done)
		_ = conn.Close()
	}()

	go client.writePump()
	// 循环读取客户端发来的消息，阻塞直到连接断开
	client.readPump(h)
}

func (c *clientConn) readPump(h *Handler) {
	c.conn.SetReadLimit(4096)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("realtime: read: %v", err)
			}
			return
		}

		var clientMsg ClientMessage
		dec := json.NewDecoder(bytes.NewReader(msg))
		// 过滤条件中的id保持原样，避免int64精度丢失
		dec.UseNumber()
		if err := dec.Decode(&clientMsg); err != nil {
			c.reply(ServerMessage{Type: "error", Error: "invalid message"})
			continue
		}
		if _, ok := h.tables[clientMsg.Table]; !ok {
			c.reply(ServerMessage{Type: "error", Table: clientMsg.Table, Error: "unknown table"})
			continue
		}

		switch clientMsg.Action {
		case "subscribe":
			c.subscribe(h.gw, clientMsg)
		case "unsubscribe":
			c.unsubscribe(clientMsg)
		default:
			c.reply(ServerMessage{Type: "error", Table: clientMsg.Table, Error: "unknown action"})
			continue
		}
		c.reply(ServerMessage{Type: "ack", Table: clientMsg.Table})
	}
}

func (c *clientConn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logger.Warnf("realtime: write: %v", err)
				_ = c.conn.Close()
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				_ = c.conn.Close()
				return
			}
		}
	}
}

// reply 队列满或连接已关闭时丢弃
func (c *clientConn) reply(m ServerMessage) {
	data, err := json.Marshal(m)
	if err != nil {
		logger.Errorf("realtime: encode message: %v", err)
		return
	}
	select {
	case <-c.done:
	case c.send <- data:
	default:
		logger.Warnf("realtime: client queue is full, message dropped")
	}
}

func (c *clientConn) subscribe(gw gateway.Gateway, m ClientMessage) {
	key := subKey(m.Table, m.Filter)
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.subs[key]; ok {
		return
	}
	c.subs[key] = gw.Subscribe(m.Table, m.Filter, func(change gateway.Change) {
		c.reply(ServerMessage{Type: "change", Table: change.Table, Change: &change})
	})
}

func (c *clientConn) unsubscribe(m ClientMessage) {
	key := subKey(m.Table, m.Filter)
	c.mu.Lock()
	defer c.mu.Unlock()
	if sub, ok := c.subs[key]; ok {
		sub.Unsubscribe()
		delete(c.subs, key)
	}
}

func (c *clientConn) unsubscribeAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, sub := range c.subs {
		sub.Unsubscribe()
		delete(c.subs, key)
	}
}

// subKey 同一个表相同过滤条件只订阅一次，列名排序保证key稳定
func subKey(table string, filter gateway.Filter) string {
	cols := make([]string, 0, len(filter))
	for col := range filter {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	var b bytes.Buffer
	b.WriteString(table)
	for _, col := range cols {
		b.WriteString("|")
		b.WriteString(col)
		b.WriteString("=")
		data, _ := json.Marshal(filter[col])
		b.Write(data)
	}
	return b.String()
}
