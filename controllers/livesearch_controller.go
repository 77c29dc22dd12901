package controllers

import (
	"net/http"
	"time"

	"platewise-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

type LiveSearchController struct {
	hub *services.LiveSearchHub
}

func NewLiveSearchController(hub *services.LiveSearchHub) *LiveSearchController {
	return &LiveSearchController{hub: hub}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind ALB/CloudFront if needed
}

// SearchWS streams search-as-you-type results. Each text frame from the
// client is one keystroke's worth of query; the hub debounces and pushes the
// result frames back.
func (lc *LiveSearchController) SearchWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}
	cl := services.NewSearchClient(conn)
	lc.hub.Register(cl)

	// ping to keep connections alive through some proxies; must share the
	// client's write path, the connection allows one writer at a time
	go func() {
		t := time.NewTicker(25 * time.Second)
		defer t.Stop()
		for range t.C {
			if err := cl.WritePing(); err != nil {
				lc.hub.Unregister(cl)
				return
			}
		}
	}()

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			lc.hub.Unregister(cl)
			return
		}
		lc.hub.HandleQuery(cl, string(msg))
	}
}
