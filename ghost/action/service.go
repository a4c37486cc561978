package action

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"

	"github.com/viant/fluxor/model/types"
	"github.com/viant/ghost-mcp/ghost"
	"github.com/viant/ghost-mcp/internal/conv"
)

const serviceName = "ghost"

// Operation defaults.
const (
	defaultStatus      = "draft"
	defaultListLimit   = 10
	defaultListFilter  = "all"
	noPostsFoundResult = "No posts found matching the criteria."
)

// CreatePostInput are the arguments of the create_post tool.
type CreatePostInput struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Status  string   `json:"status,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// ListPostsInput are the arguments of the list_posts tool.
type ListPostsInput struct {
	Limit  int    `json:"limit,omitempty"`
	Status string `json:"status,omitempty"`
}

// EditPostInput are the arguments of the edit_post tool.  Optional fields
// left unset keep their currently stored value.
type EditPostInput struct {
	PostID  string   `json:"post_id"`
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Status  *string  `json:"status,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

// DebugInput is the (empty) argument set of debug_api_connection.
type DebugInput struct{}

// Service implements types.Service for the four Ghost operations.
type Service struct {
	client    *ghost.Client
	sigs      types.Signatures
	executors map[string]types.Executable
}

// New builds the action service on top of the supplied Ghost client.
func New(client *ghost.Client) *Service {
	s := &Service{client: client, executors: map[string]types.Executable{}}

	s.register("create_post",
		"Create a new post in Ghost. Content is the post body in HTML format; status is one of draft, published or scheduled (default draft); tags optionally attach tag names.",
		reflect.TypeOf(&CreatePostInput{}),
		func(ctx context.Context, input interface{}) string {
			in := &CreatePostInput{}
			if err := conv.Convert(input, in); err != nil {
				return fmt.Sprintf("Error creating post: %v", err)
			}
			return s.createPost(ctx, in)
		})

	s.register("list_posts",
		"List posts from Ghost. Limit caps the number of posts returned (default 10); status filters by post status (all, draft, published, scheduled).",
		reflect.TypeOf(&ListPostsInput{}),
		func(ctx context.Context, input interface{}) string {
			in := &ListPostsInput{}
			if err := conv.Convert(input, in); err != nil {
				return fmt.Sprintf("Error listing posts: %v", err)
			}
			return s.listPosts(ctx, in)
		})

	s.register("edit_post",
		"Edit an existing post in Ghost. Fields left unset keep their current value; the stored updated_at timestamp is re-submitted so conflicting concurrent edits are rejected upstream.",
		reflect.TypeOf(&EditPostInput{}),
		func(ctx context.Context, input interface{}) string {
			in := &EditPostInput{}
			if err := conv.Convert(input, in); err != nil {
				return fmt.Sprintf("Error retrieving post: %v", err)
			}
			return s.editPost(ctx, in)
		})

	s.register("debug_api_connection",
		"Debug the Ghost API connection to help diagnose credential or connectivity issues.",
		reflect.TypeOf(&DebugInput{}),
		func(ctx context.Context, _ interface{}) string {
			return s.debugConnection(ctx)
		})

	return s
}

// register wires one operation: a signature for schema generation plus an
// executor that coerces arbitrary argument shapes into the typed input.
func (s *Service) register(name, description string, input reflect.Type, call func(ctx context.Context, input interface{}) string) {
	s.sigs = append(s.sigs, types.Signature{
		Name:        name,
		Description: description,
		Input:       input,
		Output:      reflect.TypeOf(""),
	})
	s.executors[name] = func(ctx context.Context, input, output interface{}) error {
		text := call(ctx, input)
		switch out := output.(type) {
		case *string:
			*out = text
		case *interface{}:
			*out = text
		default:
			if output != nil {
				return conv.Convert(text, output)
			}
		}
		return nil
	}
}

func (s *Service) Name() string { return serviceName }

func (s *Service) Methods() types.Signatures { return s.sigs }

func (s *Service) Method(name string) (types.Executable, error) {
	if exec, ok := s.executors[name]; ok {
		return exec, nil
	}
	return nil, types.NewMethodNotFoundError(name)
}

func (s *Service) createPost(ctx context.Context, in *CreatePostInput) string {
	status := in.Status
	if status == "" {
		status = defaultStatus
	}
	created, err := s.client.CreatePost(ctx, &ghost.Post{
		Title:  in.Title,
		HTML:   in.Content,
		Status: status,
		Tags:   toTags(in.Tags),
	})
	if err != nil {
		var shape *ghost.ShapeError
		if errors.As(err, &shape) {
			return "Unexpected response format: " + shape.Raw
		}
		return fmt.Sprintf("Error creating post: %v", err)
	}
	return marshal(struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		URL       string `json:"url"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
	}{created.ID, created.Title, created.URL, created.Status, created.CreatedAt})
}

func (s *Service) listPosts(ctx context.Context, in *ListPostsInput) string {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	status := in.Status
	if status == "" {
		status = defaultListFilter
	}
	posts, err := s.client.ListPosts(ctx, limit, status)
	if err != nil {
		var shape *ghost.ShapeError
		if errors.As(err, &shape) {
			return "Unexpected response format: " + shape.Raw
		}
		return fmt.Sprintf("Error listing posts: %v", err)
	}
	if len(posts) == 0 {
		return noPostsFoundResult
	}
	type item struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		Status    string `json:"status"`
		CreatedAt string `json:"created_at"`
		UpdatedAt string `json:"updated_at"`
	}
	items := make([]item, 0, len(posts))
	for _, post := range posts {
		items = append(items, item{post.ID, post.Title, post.Status, post.CreatedAt, post.UpdatedAt})
	}
	return marshal(items)
}

func (s *Service) editPost(ctx context.Context, in *EditPostInput) string {
	current, err := s.client.GetPost(ctx, in.PostID)
	if err != nil {
		var shape *ghost.ShapeError
		if errors.As(err, &shape) {
			return fmt.Sprintf("Error processing post data: %v", shape)
		}
		return fmt.Sprintf("Error retrieving post: %v", err)
	}

	// Unspecified fields keep their stored values; updated_at is always
	// carried over for Ghost's conflict detection.
	update := ghost.Post{
		ID:        in.PostID,
		Title:     current.Title,
		HTML:      current.HTML,
		Status:    current.Status,
		UpdatedAt: current.UpdatedAt,
	}
	if in.Title != nil {
		update.Title = *in.Title
	}
	if in.Content != nil {
		update.HTML = *in.Content
	}
	if in.Status != nil {
		update.Status = *in.Status
	}
	if len(in.Tags) > 0 {
		update.Tags = toTags(in.Tags)
	}

	updated, err := s.client.UpdatePost(ctx, &update)
	if err != nil {
		var shape *ghost.ShapeError
		if errors.As(err, &shape) {
			return fmt.Sprintf("Error processing post data: %v", shape)
		}
		return fmt.Sprintf("Error updating post: %v", err)
	}
	return marshal(struct {
		ID        string `json:"id"`
		Title     string `json:"title"`
		URL       string `json:"url"`
		Status    string `json:"status"`
		UpdatedAt string `json:"updated_at"`
	}{updated.ID, updated.Title, updated.URL, updated.Status, updated.UpdatedAt})
}

func (s *Service) debugConnection(ctx context.Context) string {
	report, err := s.client.CheckConnection(ctx)
	if err != nil {
		return marshal(map[string]string{"error": err.Error()})
	}
	return marshal(report)
}

func toTags(names []string) []ghost.Tag {
	if len(names) == 0 {
		return nil
	}
	tags := make([]ghost.Tag, 0, len(names))
	for _, name := range names {
		tags = append(tags, ghost.Tag{Name: name})
	}
	return tags
}

func marshal(v interface{}) string {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("Error processing post data: %v", err)
	}
	return string(data)
}
