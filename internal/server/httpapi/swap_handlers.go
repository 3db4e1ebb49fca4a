package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/snackswap/snackswap/internal/server/models"
)

func (s *Server) handleCreateSwap(c *gin.Context) {
	var req createSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "food_id is required"})
		return
	}

	swap, err := s.swaps.Request(c.Request.Context(), currentUserID(c), req.FoodID)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSwapResponse(swap))
}

func (s *Server) handleRespondSwap(c *gin.Context) {
	var req respondSwapRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := s.swaps.Respond(c.Request.Context(), currentUserID(c), c.Param("id"), req.Accept); err != nil {
		s.writeError(c, err)
		return
	}

	status := models.SwapStatusDeclined
	if req.Accept {
		status = models.SwapStatusAccepted
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}

func (s *Server) listSwaps(c *gin.Context, list []*models.SwapWithDetails, err error) {
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]swapDetailsResponse, 0, len(list))
	for _, item := range list {
		out = append(out, toSwapDetailsResponse(item))
	}
	c.JSON(http.StatusOK, gin.H{"swaps": out})
}

func (s *Server) handleListReceived(c *gin.Context) {
	list, err := s.swaps.ListReceived(c.Request.Context(), currentUserID(c))
	s.listSwaps(c, list, err)
}

func (s *Server) handleListSent(c *gin.Context) {
	list, err := s.swaps.ListSent(c.Request.Context(), currentUserID(c))
	s.listSwaps(c, list, err)
}

func (s *Server) handleOpenThread(c *gin.Context) {
	msgs, err := s.swaps.OpenThread(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}

	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	c.JSON(http.StatusOK, gin.H{"messages": out})
}

func (s *Server) handleSendMessage(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body is required"})
		return
	}

	msg, err := s.swaps.SendMessage(c.Request.Context(), currentUserID(c), c.Param("id"), req.Body)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toMessageResponse(msg))
}

func (s *Server) handleUnreadCount(c *gin.Context) {
	n, err := s.swaps.UnreadCount(c.Request.Context(), currentUserID(c))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"unread": n})
}

var wsUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The terminal client is not a browser; origin checks do not apply.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket upgrades the connection and parks it on the hub until the
// peer disconnects.
func (s *Server) handleWebsocket(c *gin.Context) {
	conn, err := wsUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	s.hub.Attach(conn, currentUserID(c))
}
