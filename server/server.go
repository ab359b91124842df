package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/skip2/go-qrcode"

	"github.com/cchutis/halloween-wedding/leaderboard"
)

const (
	maxBodyBytes  = 4096
	qrDefaultSize = 256
	qrMinSize     = 64
	qrMaxSize     = 1024
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true // Non-browser clients don't send Origin
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		return u.Host == r.Host
	},
}

// Server is the leaderboard service: REST handlers plus the live feed
type Server struct {
	db        *DB
	auth      *Auth
	hub       *Hub
	analytics *Analytics
	contest   Contest
	publicURL string
	now       func() time.Time
	log       *logrus.Entry
}

// NewServer wires the service's parts together. The hub must be running.
func NewServer(db *DB, auth *Auth, hub *Hub, analytics *Analytics, contest Contest, publicURL string) *Server {
	return &Server{
		db:        db,
		auth:      auth,
		hub:       hub,
		analytics: analytics,
		contest:   contest,
		publicURL: publicURL,
		now:       time.Now,
		log:       logrus.WithField("component", "server"),
	}
}

// Routes configures HTTP routes
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/scores", s.handleTop)
	mux.HandleFunc("POST /api/scores", s.handleSubmit)
	mux.HandleFunc("GET /api/scores/rank", s.handleRank)
	mux.HandleFunc("DELETE /api/scores/{id}", s.requireAdmin(s.handleDelete))
	mux.HandleFunc("POST /api/admin/login", s.handleLogin)
	mux.HandleFunc("GET /api/winner", s.handleWinner)
	mux.HandleFunc("GET /api/qr.png", s.handleQR)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /ws", s.handleFeed)
	return mux
}

func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", leaderboard.DefaultLimit)
	if err != nil {
		writeError(w, http.StatusBadRequest, "limit must be an integer")
		return
	}
	entries, err := s.db.Top(r.Context(), leaderboard.ClampLimit(limit))
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	if req.Score == nil {
		writeError(w, http.StatusBadRequest, "score is required")
		return
	}

	ctx := r.Context()
	entry, rank, err := s.db.InsertScore(ctx, req.Name, *req.Score)
	if errors.Is(err, leaderboard.ErrInvalidEntry) {
		writeError(w, http.StatusBadRequest, "name must not be empty and score must not be negative")
		return
	}
	if err != nil {
		s.serverError(w, err)
		return
	}

	closed := s.contest.Closed(s.now())
	s.log.WithFields(logrus.Fields{"name": entry.Name, "score": entry.Score, "rank": rank}).Info("score recorded")
	s.analytics.Track(EvtScoreSubmit, extractIP(r), eventData(map[string]any{
		"id": entry.ID, "score": entry.Score, "closed": closed,
	}))
	s.publish(ctx)

	writeJSON(w, http.StatusCreated, submitResponse{Entry: entry, Rank: rank, ContestClosed: closed})
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil || score < 0 {
		writeError(w, http.StatusBadRequest, "score must be a non-negative integer")
		return
	}
	ctx := r.Context()
	rank, err := s.db.RankFor(ctx, score)
	if err != nil {
		s.serverError(w, err)
		return
	}
	total, err := s.db.CountScores(ctx)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rankResponse{Score: score, Rank: rank, Total: total})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "malformed body")
		return
	}
	ip := extractIP(r)
	token, err := s.auth.Login(req.Password, ip)
	switch {
	case errors.Is(err, errRateLimited):
		writeError(w, http.StatusTooManyRequests, err.Error())
		return
	case errors.Is(err, errAdminOff):
		writeError(w, http.StatusNotFound, err.Error())
		return
	case err != nil:
		writeError(w, http.StatusUnauthorized, "invalid password")
		return
	}
	s.analytics.Track(EvtAdminLogin, ip, "")
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

// requireAdmin rejects requests without a valid bearer token
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.auth.ValidateToken(bearerToken(r)); err != nil {
			writeError(w, http.StatusUnauthorized, errUnauthorized.Error())
			return
		}
		next(w, r)
	}
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "id must be an integer")
		return
	}
	ctx := r.Context()
	found, err := s.db.DeleteScore(ctx, id)
	if err != nil {
		s.serverError(w, err)
		return
	}
	if !found {
		writeError(w, http.StatusNotFound, "no such score")
		return
	}
	s.log.WithField("id", id).Info("score removed")
	s.analytics.Track(EvtScoreDelete, extractIP(r), eventData(map[string]any{"id": id}))
	s.publish(ctx)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := s.contest.Winner(r.Context(), s.db)
	if err != nil {
		s.serverError(w, err)
		return
	}
	resp := winnerResponse{Winner: winner, Closed: s.contest.Closed(s.now())}
	if !s.contest.Ends.IsZero() {
		resp.Ends = s.contest.Ends.UTC().Format(time.RFC3339)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	size, err := queryInt(r, "size", qrDefaultSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, "size must be an integer")
		return
	}
	size = max(qrMinSize, min(size, qrMaxSize))

	png, err := qrcode.Encode(s.publicURL, qrcode.Medium, size)
	if err != nil {
		s.serverError(w, err)
		return
	}
	s.analytics.Track(EvtQRCodeServed, extractIP(r), "")
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(png)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	total, err := s.db.CountScores(ctx)
	if err != nil {
		s.serverError(w, err)
		return
	}
	events, err := s.analytics.EventCounts(ctx)
	if err != nil {
		s.serverError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsResponse{
		Scores:      total,
		Subscribers: s.hub.ClientCount(),
		Events:      events,
	})
}

// handleFeed upgrades to the live feed and sends the current snapshot
func (s *Server) handleFeed(w http.ResponseWriter, r *http.Request) {
	ip := extractIP(r)
	if !s.hub.CanAccept(ip) {
		http.Error(w, "too many connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.WithError(err).Debug("upgrade error")
		return
	}

	s.hub.TrackConnect(ip)
	client := NewClient(s.hub, conn, ip, s.sendSnapshot)
	if !s.hub.Register(client) {
		s.hub.TrackDisconnect(ip)
		conn.Close()
		return
	}
	s.analytics.Track(EvtFeedConnect, ip, "")
	s.sendSnapshot(client)

	go client.WritePump()
	go client.ReadPump()
}

// snapshot encodes the current top of the board
func (s *Server) snapshot(ctx context.Context) ([]byte, error) {
	entries, err := s.db.Top(ctx, leaderboard.DefaultLimit)
	if err != nil {
		return nil, err
	}
	total, err := s.db.CountScores(ctx)
	if err != nil {
		return nil, err
	}
	return leaderboard.EncodeSnapshot(leaderboard.Snapshot{
		Entries: entries,
		Total:   total,
		At:      s.now().UnixMilli(),
	})
}

func (s *Server) sendSnapshot(c *Client) {
	frame, err := s.snapshot(context.Background())
	if err != nil {
		s.log.WithError(err).Warn("snapshot failed")
		return
	}
	c.SendBinary(frame)
}

// publish pushes a fresh snapshot to every feed subscriber
func (s *Server) publish(ctx context.Context) {
	frame, err := s.snapshot(context.WithoutCancel(ctx))
	if err != nil {
		s.log.WithError(err).Warn("snapshot failed")
		return
	}
	s.hub.Broadcast(frame)
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	s.log.WithError(err).Error("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorMsg{Msg: msg})
}
