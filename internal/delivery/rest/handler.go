package rest

import (
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	"github.com/Arshath015/Ekonomi/internal/domain/entity"
	"github.com/Arshath015/Ekonomi/internal/usecase"
)

// WelcomeMessage body of GET /
const WelcomeMessage = "Welcome to AI Chatbot & Product API"

// AnonymousUser user id for GET /chat requests that carry none
const AnonymousUser = "anonymous"

// Handler serves the chat and product routes.
type Handler struct {
	chat     usecase.ChatUseCase
	products usecase.ProductUseCase
}

// NewHandler creates a new API handler.
func NewHandler(chat usecase.ChatUseCase, products usecase.ProductUseCase) *Handler {
	return &Handler{chat: chat, products: products}
}

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`
}

type chatResponse struct {
	ConversationID string `json:"conversation_id"`
	Response       string `json:"response"`
}

// Home handles GET /.
func (h *Handler) Home(c fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": WelcomeMessage})
}

// Chat handles POST /chat with a JSON body.
func (h *Handler) Chat(c fiber.Ctx) error {
	var body chatRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return fmt.Errorf("%w: invalid request body", entity.ErrInvalidInput)
	}
	return h.reply(c, body.UserID, body.Message)
}

// ChatQuery handles GET /chat?query=&user_id=.
func (h *Handler) ChatQuery(c fiber.Ctx) error {
	return h.reply(c, c.Query("user_id", AnonymousUser), c.Query("query"))
}

func (h *Handler) reply(c fiber.Ctx, userID, message string) error {
	reply, err := h.chat.ProcessMessage(c.Context(), userID, message)
	if err != nil {
		return err
	}
	return c.JSON(chatResponse{
		ConversationID: reply.ConversationID,
		Response:       reply.Response,
	})
}

// Conversations handles GET /get-conversations?user_id=.
func (h *Handler) Conversations(c fiber.Ctx) error {
	userID := c.Query("user_id")
	conversations, err := h.chat.GetConversations(c.Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"user_id":       userID,
		"conversations": conversations,
	})
}

// Products handles GET /product?product_name=.
func (h *Handler) Products(c fiber.Ctx) error {
	products, err := h.products.FetchProductDetails(c.Context(), c.Query("product_name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"products": products})
}

// ExportProducts handles GET /product/export?product_name= as a download.
func (h *Handler) ExportProducts(c fiber.Ctx) error {
	export, err := h.products.ExportProducts(c.Context(), c.Query("product_name"))
	if err != nil {
		return err
	}

	c.Attachment(export.Filename)
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.Send(export.Data)
}
