package presenters

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"learnhub/backend/models"
	"learnhub/backend/query"
	"learnhub/backend/store"
)

const excerptLength = 140

type FeedQuery struct {
	CategoryID string `query:"categoryId"`
	Search     string `query:"search" validate:"max=100"`
	Tag        string `query:"tag"`
	Sort       string `query:"sort" validate:"omitempty,oneof=latest popular discussed"`
	Page       int    `query:"page" validate:"omitempty,min=1"`
	PageSize   int    `query:"pageSize" validate:"omitempty,min=1"`
}

type PostCategoryRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Color string `json:"color"`
}

type PostSummary struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Excerpt      string          `json:"excerpt"`
	Category     PostCategoryRef `json:"category"`
	Author       Author          `json:"author"`
	Tags         []string        `json:"tags"`
	Likes        int             `json:"likes"`
	Views        int             `json:"views"`
	CommentCount int             `json:"commentCount"`
	IsPinned     bool            `json:"isPinned"`
	CreatedAt    time.Time       `json:"createdAt"`
}

type PostCategoryOption struct {
	PostCategoryRef
	PostCount int `json:"postCount"`
}

type Feed struct {
	Items      []PostSummary        `json:"items"`
	TotalCount int                  `json:"totalCount"`
	Page       int                  `json:"page"`
	PageSize   int                  `json:"pageSize"`
	Categories []PostCategoryOption `json:"categories"`
}

// postRow keeps the full content next to the summary for search.
type postRow struct {
	post    models.Post
	summary PostSummary
}

var uncategorized = models.PostCategory{Name: "General", Slug: "general"}

var pinnedFirst = query.Desc(query.By(func(r postRow) int {
	if r.post.IsPinned {
		return 1
	}
	return 0
}))

// Pinned posts lead under every order.
var feedSorts = map[string]query.Comparator[postRow]{
	"latest":    query.Then(pinnedFirst, newestFirst(func(r postRow) time.Time { return r.post.CreatedAt })),
	"popular":   query.Then(pinnedFirst, query.Desc(query.By(func(r postRow) int { return r.post.Likes }))),
	"discussed": query.Then(pinnedFirst, query.Desc(query.By(func(r postRow) int { return r.summary.CommentCount }))),
}

// CommunityPresenter builds the community feed and post pages.
type CommunityPresenter struct {
	base
}

// Feed filters, sorts and pages the community posts.
func (p *CommunityPresenter) Feed(ctx context.Context, q FeedQuery) (Feed, error) {
	if err := validateStruct(q); err != nil {
		return Feed{}, err
	}
	if q.Sort == "" {
		q.Sort = "latest"
	}
	posts, err := p.store.Posts(ctx)
	if err != nil {
		return Feed{}, err
	}
	categories, err := p.store.PostCategories(ctx)
	if err != nil {
		return Feed{}, err
	}
	rows, err := p.postRows(ctx, posts, categories)
	if err != nil {
		return Feed{}, err
	}

	pageReq := p.pageOf(q.Page, q.PageSize, p.opts.ListPageSize)
	page := query.Query[postRow]{
		Where: []query.Predicate[postRow]{
			query.Equal(q.CategoryID, func(r postRow) string { return r.post.CategoryID }),
			query.ContainsFold(q.Search,
				func(r postRow) string { return r.post.Title },
				func(r postRow) string { return r.post.Content },
			),
			query.HasAny(q.Tag, func(r postRow) []string { return r.post.Tags }),
		},
		Order: feedSorts[q.Sort],
		Page:  pageReq,
	}.Run(rows)

	items := make([]PostSummary, 0, len(page.Items))
	for _, r := range page.Items {
		items = append(items, r.summary)
	}

	counts := make(map[string]int)
	for _, post := range posts {
		counts[post.CategoryID]++
	}
	options := make([]PostCategoryOption, 0, len(categories))
	for _, c := range categories {
		options = append(options, PostCategoryOption{PostCategoryRef: postCategoryRef(c), PostCount: counts[c.ID]})
	}

	return Feed{
		Items:      items,
		TotalCount: page.TotalCount,
		Page:       pageReq.Page,
		PageSize:   pageReq.PageSize,
		Categories: options,
	}, nil
}

func (p *CommunityPresenter) postRows(ctx context.Context, posts []models.Post, categories []models.PostCategory) ([]postRow, error) {
	comments, err := p.store.Comments(ctx)
	if err != nil {
		return nil, err
	}
	authors, err := p.authorLookup(ctx, formerMember)
	if err != nil {
		return nil, err
	}
	categoryByID := query.NewLookup(categories, byID[models.PostCategory], query.UseDefault, uncategorized)

	commentCount := make(map[string]int)
	for _, c := range comments {
		commentCount[c.PostID]++
	}

	return query.JoinAll(posts, func(post models.Post) (postRow, bool) {
		cat, _ := categoryByID.Get(post.CategoryID)
		author, _ := authors.Get(post.AuthorID)
		tags := post.Tags
		if tags == nil {
			tags = []string{}
		}
		return postRow{post: post, summary: PostSummary{
			ID:           post.ID,
			Title:        post.Title,
			Excerpt:      excerpt(post.Content),
			Category:     postCategoryRef(cat),
			Author:       author,
			Tags:         tags,
			Likes:        post.Likes,
			Views:        post.Views,
			CommentCount: commentCount[post.ID],
			IsPinned:     post.IsPinned,
			CreatedAt:    post.CreatedAt,
		}}, true
	}), nil
}

func postCategoryRef(c models.PostCategory) PostCategoryRef {
	return PostCategoryRef{ID: c.ID, Name: c.Name, Slug: c.Slug, Color: c.Color}
}

func excerpt(content string) string {
	content = strings.TrimSpace(content)
	if utf8.RuneCountInString(content) <= excerptLength {
		return content
	}
	runes := []rune(content)
	return strings.TrimSpace(string(runes[:excerptLength])) + "…"
}

// CommentNode is a comment with its replies.
type CommentNode struct {
	ID        string        `json:"id"`
	Author    Author        `json:"author"`
	Content   string        `json:"content"`
	Likes     int           `json:"likes"`
	CreatedAt time.Time     `json:"createdAt"`
	Replies   []CommentNode `json:"replies"`
}

type PostDetail struct {
	PostSummary
	Content  string        `json:"content"`
	Comments []CommentNode `json:"comments"`
}

// Post returns a post with its comment tree. Replies at every depth are
// ordered oldest first. A comment whose parent is not on the same post is
// shown at the top level.
func (p *CommunityPresenter) Post(ctx context.Context, id string) (PostDetail, error) {
	posts, err := p.store.Posts(ctx)
	if err != nil {
		return PostDetail{}, err
	}
	post, ok := store.GetByID(posts, id)
	if !ok {
		return PostDetail{}, notFound("post", id)
	}
	categories, err := p.store.PostCategories(ctx)
	if err != nil {
		return PostDetail{}, err
	}
	rows, err := p.postRows(ctx, []models.Post{post}, categories)
	if err != nil {
		return PostDetail{}, err
	}
	comments, err := p.store.Comments(ctx)
	if err != nil {
		return PostDetail{}, err
	}
	authors, err := p.authorLookup(ctx, formerMember)
	if err != nil {
		return PostDetail{}, err
	}

	own := store.GetAllWhere(comments, func(c models.Comment) bool { return c.PostID == id })
	return PostDetail{
		PostSummary: rows[0].summary,
		Content:     post.Content,
		Comments:    commentTree(own, authors),
	}, nil
}

func commentTree(comments []models.Comment, authors *query.Lookup[Author]) []CommentNode {
	sorted := query.SortStable(comments, oldestFirst(func(c models.Comment) time.Time { return c.CreatedAt }))

	present := make(map[string]bool, len(sorted))
	for _, c := range sorted {
		present[c.ID] = true
	}
	children := make(map[string][]models.Comment)
	var roots []models.Comment
	for _, c := range sorted {
		if c.ParentID == "" || !present[c.ParentID] {
			roots = append(roots, c)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], c)
	}

	visited := make(map[string]bool, len(sorted))
	var build func(c models.Comment) CommentNode
	build = func(c models.Comment) CommentNode {
		visited[c.ID] = true
		author, _ := authors.Get(c.AuthorID)
		node := CommentNode{
			ID: c.ID, Author: author, Content: c.Content,
			Likes: c.Likes, CreatedAt: c.CreatedAt, Replies: []CommentNode{},
		}
		for _, child := range children[c.ID] {
			if !visited[child.ID] {
				node.Replies = append(node.Replies, build(child))
			}
		}
		return node
	}

	out := make([]CommentNode, 0, len(roots))
	for _, r := range roots {
		out = append(out, build(r))
	}
	return out
}

type CreatePostRequest struct {
	Title      string   `json:"title" validate:"required,min=5,max=200"`
	Content    string   `json:"content" validate:"required,min=10,max=10000"`
	CategoryID string   `json:"categoryId" validate:"required"`
	Tags       []string `json:"tags" validate:"max=5,dive,min=1,max=30"`
}

type AddCommentRequest struct {
	Content  string `json:"content" validate:"required,min=1,max=2000"`
	ParentID string `json:"parentId"`
}

// CreatePost validates a new post and hands out an id for it. The post is
// not stored.
func (p *CommunityPresenter) CreatePost(ctx context.Context, authorID string, req CreatePostRequest) (ActionResult, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(req); err != nil {
		return ActionResult{}, err
	}
	categories, err := p.store.PostCategories(ctx)
	if err != nil {
		return ActionResult{}, err
	}
	if _, ok := store.GetByID(categories, req.CategoryID); !ok {
		return ActionResult{}, invalidField("categoryId", "unknown category")
	}
	return p.stub("community.create_post", true, "author_id", authorID, "category_id", req.CategoryID, "title", req.Title), nil
}

// LikePost acknowledges a like. Like counts do not change.
func (p *CommunityPresenter) LikePost(ctx context.Context, userID, postID string) (ActionResult, error) {
	posts, err := p.store.Posts(ctx)
	if err != nil {
		return ActionResult{}, err
	}
	if _, ok := store.GetByID(posts, postID); !ok {
		return ActionResult{}, notFound("post", postID)
	}
	return p.stub("community.like_post", false, "user_id", userID, "post_id", postID), nil
}

// AddComment validates a comment or reply and hands out an id for it.
func (p *CommunityPresenter) AddComment(ctx context.Context, userID, postID string, req AddCommentRequest) (ActionResult, error) {
	req.Content = strings.TrimSpace(req.Content)
	if err := validateStruct(req); err != nil {
		return ActionResult{}, err
	}
	posts, err := p.store.Posts(ctx)
	if err != nil {
		return ActionResult{}, err
	}
	if _, ok := store.GetByID(posts, postID); !ok {
		return ActionResult{}, notFound("post", postID)
	}
	if req.ParentID != "" {
		comments, err := p.store.Comments(ctx)
		if err != nil {
			return ActionResult{}, err
		}
		parent, ok := store.GetByID(comments, req.ParentID)
		if !ok || parent.PostID != postID {
			return ActionResult{}, invalidField("parentId", "not a comment on this post")
		}
	}
	return p.stub("community.add_comment", true, "user_id", userID, "post_id", postID, "parent_id", req.ParentID), nil
}
