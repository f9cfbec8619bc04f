package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"threadnest/internal/domain"
	"threadnest/internal/middleware"
	"threadnest/internal/service/comment"
	"threadnest/internal/service/tree"
	"threadnest/internal/service/vote"
)

type CommentHandler struct {
	commentService comment.Service
	treeService    tree.Service
	voteService    vote.Service
}

func NewCommentHandler(commentService comment.Service, treeService tree.Service, voteService vote.Service) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		treeService:    treeService,
		voteService:    voteService,
	}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if input.Parent == uuid.Nil || !input.ParentKind.IsValid() || strings.TrimSpace(input.Text) == "" {
		return middleware.BadRequest("Missing required parameter")
	}

	created, err := h.commentService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	var input domain.UpdateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}
	if strings.TrimSpace(input.Text) == "" {
		return middleware.BadRequest("Missing required parameter text")
	}

	updated, err := h.commentService.Update(c.Context(), userID, commentID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	if err := h.commentService.Delete(c.Context(), userID, commentID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CommentHandler) Vote(c *fiber.Ctx) error {
	userID := middleware.GetCurrentUserID(c)

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return middleware.BadRequest("Invalid comment ID")
	}

	var input domain.VoteInput
	if err := c.BodyParser(&input); err != nil {
		return middleware.BadRequest("Invalid request body")
	}

	if err := h.voteService.Vote(c.Context(), userID, commentID, input.Value); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Tree serves GET /posts/:postId/comments. limit and depth are display
// tuning: absent or out-of-range values fall back to server defaults
// rather than failing, but an explicit depth=0 is honored (markers only).
func (h *CommentHandler) Tree(c *fiber.Ctx) error {
	postID, err := uuid.Parse(c.Params("postId"))
	if err != nil {
		return middleware.BadRequest("Invalid post ID")
	}

	opts := domain.TreeOptions{
		PageSize: c.QueryInt("limit", 0),
		Depth:    c.QueryInt("depth", -1),
	}
	if after := c.Query("after"); after != "" {
		id, err := uuid.Parse(after)
		if err != nil {
			return middleware.BadRequest("Invalid after cursor")
		}
		opts.After = id
	}
	if commentID := c.Query("commentId"); commentID != "" {
		id, err := uuid.Parse(commentID)
		if err != nil {
			return middleware.BadRequest("Invalid comment ID")
		}
		opts.Comment = id
	}

	built, err := h.treeService.Build(c.Context(), postID, opts)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(renderTree(built))
}

// renderTree applies the tombstone rule at the presentation boundary:
// deleted nodes keep their place and children, but text and author are
// suppressed.
func renderTree(t *domain.Tree) *domain.Tree {
	rendered := *t
	rendered.Children = renderNodes(t.Children)
	return &rendered
}

func renderNodes(nodes []domain.TreeNode) []domain.TreeNode {
	rendered := make([]domain.TreeNode, len(nodes))
	for i, node := range nodes {
		if node.IsDeleted {
			node.Text = "[deleted]"
			node.Author = uuid.Nil
		}
		node.Children = renderNodes(node.Children)
		rendered[i] = node
	}
	return rendered
}
