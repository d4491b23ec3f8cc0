package controllers

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/yigit/campuslink/internal/app/models"
	"github.com/yigit/campuslink/internal/app/models/dto"
	"github.com/yigit/campuslink/internal/pkg/apperrors"
)

func setupMessageRouter(svc *MockMessageService) *gin.Engine {
	controller := NewMessageController(svc, zerolog.Nop())
	router := gin.New()
	router.POST("/api/send-message", controller.SendMessage)
	router.GET("/api/messages/:sender/:receiver", controller.GetConversation)
	router.GET("/api/unread-counts/:userEmail", controller.GetUnreadCounts)
	router.POST("/api/mark-read", controller.MarkRead)
	router.GET("/api/last-message-times/:userEmail", controller.GetLastMessageTimes)
	router.GET("/api/total-unread/:userEmail", controller.GetTotalUnread)
	return router
}

func TestSendMessage(t *testing.T) {
	t.Run("accepts sender and receiver aliases", func(t *testing.T) {
		svc := new(MockMessageService)
		router := setupMessageRouter(svc)
		svc.On("SendMessage", mock.Anything, "a@campus.edu", "b@campus.edu", "hi").
			Return(&models.Message{ID: 1}, nil)

		w := performJSON(router, http.MethodPost, "/api/send-message",
			`{"sender":"a@campus.edu","receiver":"b@campus.edu","message":"hi"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decode(t, w)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "Message sent successfully", body["message"])
		svc.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		svc := new(MockMessageService)
		router := setupMessageRouter(svc)
		svc.On("SendMessage", mock.Anything, "a@campus.edu", "", "hi").Return(nil, apperrors.ErrMissingFields)

		w := performJSON(router, http.MethodPost, "/api/send-message", `{"senderEmail":"a@campus.edu","message":"hi"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All fields are required", decode(t, w)["message"])
	})

	t.Run("persistence failure", func(t *testing.T) {
		svc := new(MockMessageService)
		router := setupMessageRouter(svc)
		svc.On("SendMessage", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, errors.New("insert failed"))

		w := performJSON(router, http.MethodPost, "/api/send-message",
			`{"senderEmail":"a@campus.edu","receiverEmail":"b@campus.edu","message":"hi"}`)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to send message", decode(t, w)["message"])
	})
}

func TestGetConversation(t *testing.T) {
	svc := new(MockMessageService)
	router := setupMessageRouter(svc)
	svc.On("Conversation", mock.Anything, "a@campus.edu", "b@campus.edu").Return([]dto.MessageResponse{
		{ID: 1, Sender: "a@campus.edu", Receiver: "b@campus.edu", Message: "hi"},
		{ID: 2, Sender: "b@campus.edu", Receiver: "a@campus.edu", Message: "hey"},
	}, nil)

	w := performJSON(router, http.MethodGet, "/api/messages/a@campus.edu/b@campus.edu", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Regexp(t, `"message":"hi".*"message":"hey"`, w.Body.String())
}

func TestUnreadEndpoints(t *testing.T) {
	svc := new(MockMessageService)
	router := setupMessageRouter(svc)
	last := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	svc.On("UnreadCounts", mock.Anything, "b@campus.edu").Return(map[string]int64{"a@campus.edu": 2}, nil)
	svc.On("LastMessageTimes", mock.Anything, "b@campus.edu").Return(map[string]time.Time{"a@campus.edu": last}, nil)
	svc.On("TotalUnread", mock.Anything, "b@campus.edu").Return(int64(2), nil)

	w := performJSON(router, http.MethodGet, "/api/unread-counts/b@campus.edu", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"a@campus.edu":2}`, w.Body.String())

	w = performJSON(router, http.MethodGet, "/api/last-message-times/b@campus.edu", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"a@campus.edu":"2026-03-01T09:30:00Z"}`, w.Body.String())

	w = performJSON(router, http.MethodGet, "/api/total-unread/b@campus.edu", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"totalUnread":2}`, w.Body.String())
}

func TestMarkRead(t *testing.T) {
	svc := new(MockMessageService)
	router := setupMessageRouter(svc)
	svc.On("MarkRead", mock.Anything, &dto.MarkReadRequest{Sender: "a@campus.edu", Receiver: "b@campus.edu"}).Return(nil)
	svc.On("MarkRead", mock.Anything, &dto.MarkReadRequest{Sender: "a@campus.edu"}).Return(apperrors.ErrMissingFields)

	w := performJSON(router, http.MethodPost, "/api/mark-read", `{"sender":"a@campus.edu","receiver":"b@campus.edu"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	w = performJSON(router, http.MethodPost, "/api/mark-read", `{"sender":"a@campus.edu"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMessageQueryFailure(t *testing.T) {
	svc := new(MockMessageService)
	router := setupMessageRouter(svc)
	svc.On("TotalUnread", mock.Anything, "b@campus.edu").Return(int64(0), errors.New("db down"))

	w := performJSON(router, http.MethodGet, "/api/total-unread/b@campus.edu", "")

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "db down", body["error"].(map[string]interface{})["details"])
}
