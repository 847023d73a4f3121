package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/taxitalk/server/internal/auth"
	"github.com/taxitalk/server/internal/domain"
	"github.com/taxitalk/server/internal/hub"
	"github.com/taxitalk/server/lib/logger/sl"
)

type HubController struct {
	hub      *hub.Hub
	verifier auth.TokenVerifier
	log      *slog.Logger
	upgrader websocket.Upgrader
}

func NewHubController(h *hub.Hub, verifier auth.TokenVerifier, log *slog.Logger) *HubController {
	if log == nil {
		log = slog.Default()
	}
	return &HubController{
		hub:      h,
		verifier: verifier,
		log:      log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

func (c *HubController) ListRooms(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"rooms": c.hub.Rooms()})
}

func (c *HubController) ListParticipants(ctx *gin.Context) {
	members := c.hub.Participants(ctx.Param("name"))
	if members == nil {
		ctx.JSON(http.StatusNotFound, gin.H{"error": "room not found"})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"participants": members})
}

// ServeWS admits a signaling connection. The credential token is verified
// before the upgrade; an unauthenticated caller never reaches the hub.
func (c *HubController) ServeWS(ctx *gin.Context) {
	token := extractToken(ctx)
	if token == "" {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "token is required"})
		return
	}

	user, err := c.verifier.VerifyToken(ctx.Request.Context(), token)
	if err != nil {
		c.log.Info("connection refused", sl.Err(err))
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
		return
	}

	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Error("failed to upgrade connection", sl.Err(err))
		return
	}

	client := domain.NewClient(user)
	client.Socket = conn

	go writePump(client)

	c.hub.Join(client, ctx.Query("room"))
	c.readLoop(client)
}

// readLoop drives the hub with inbound events until the socket dies.
// Malformed frames are ignored rather than fatal; only transport errors
// end the connection.
func (c *HubController) readLoop(client *domain.Client) {
	conn := client.Socket
	defer func() {
		c.hub.Disconnect(client)
		close(client.Events)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		var msg domain.SignalMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			c.log.Debug("ignoring malformed message",
				slog.String("client", client.ID), sl.Err(err))
			continue
		}

		switch msg.Type {
		case domain.TypeJoin:
			c.hub.Join(client, msg.Room)
		case domain.TypeRequestFloor:
			c.hub.RequestFloor(client)
		case domain.TypeReleaseFloor:
			c.hub.ReleaseFloor(client)
		case domain.TypeOffer, domain.TypeAnswer, domain.TypeICECandidate:
			c.hub.Relay(client, msg)
		default:
			c.log.Debug("ignoring unknown message type",
				slog.String("client", client.ID), slog.String("type", msg.Type))
		}
	}
}

func writePump(client *domain.Client) {
	for event := range client.Events {
		if err := client.Socket.WriteJSON(event); err != nil {
			return
		}
	}
}

func extractToken(ctx *gin.Context) string {
	if token := ctx.Query("token"); token != "" {
		return token
	}
	header := ctx.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return ""
}
