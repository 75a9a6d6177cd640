package cli

import (
	"fmt"

	"postboard/internal/common"
)

func (a *App) Register() {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.requestCtx()
	defer cancel()

	token, err := a.api.Register(ctx, userName, password)
	if err != nil {
		fmt.Fprintf(a.out, "Registration unsuccessful: %v\n", err)
		return
	}

	a.token = token
	a.userName = userName
	fmt.Fprintln(a.out, "Registration successful")
}

func (a *App) Login() {
	userName, err := GetSimpleText(a.reader, "Enter user name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer common.WipeByteArray(password)

	ctx, cancel := a.requestCtx()
	defer cancel()

	token, err := a.api.Authenticate(ctx, userName, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return
	}

	a.token = token
	a.userName = userName
	fmt.Fprintln(a.out, "Login successful")
}

func (a *App) Logout() {
	a.token = ""
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) AddPost() {
	title, err := GetSimpleText(a.reader, "Enter title", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	content, err := GetMultiline(a.reader, "Enter content", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	ctx, cancel := a.requestCtx()
	defer cancel()

	post, err := a.api.CreatePost(ctx, a.token, title, content)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Created post %s\n", post.ID)
}

func (a *App) ListPosts() {
	ctx, cancel := a.requestCtx()
	defer cancel()

	posts, err := a.api.ListPosts(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	if len(posts) == 0 {
		fmt.Fprintln(a.out, "No posts yet")
		return
	}
	for _, p := range posts {
		fmt.Fprintf(a.out, "%s  %s  by %s\n", p.ID, p.Title, p.Author)
	}
}

func (a *App) ShowPost(id string) {
	ctx, cancel := a.requestCtx()
	defer cancel()

	post, err := a.api.GetPost(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "%s\nby %s at %s\n\n%s\n", post.Title, post.Author, post.CreatedAt.Format("2006-01-02 15:04"), post.Content)
}

func (a *App) DeletePost(id string) {
	ctx, cancel := a.requestCtx()
	defer cancel()

	if err := a.api.DeletePost(ctx, a.token, id); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	fmt.Fprintf(a.out, "Deleted post %s\n", id)
}

func (a *App) Status() {
	ctx, cancel := a.requestCtx()
	defer cancel()

	if err := a.api.Status(ctx); err != nil {
		fmt.Fprintf(a.out, "Server unavailable: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Server is up")
}
