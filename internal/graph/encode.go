package graph

import (
	jsoniter "github.com/json-iterator/go"

	"postgraph/internal/core"
)

// nodeEncoder writes entities to a stream, dereferencing relational fields
// through the resolver as the selection reaches them.
type nodeEncoder struct {
	stream *jsoniter.Stream
	refs   *core.Resolver
	errors []Error
}

func childPath(path []any, elem any) []any {
	out := make([]any, len(path), len(path)+1)
	copy(out, path)
	return append(out, elem)
}

// stale writes null for a relational field whose target is gone and records
// the field error.
func (e *nodeEncoder) stale(err error, path []any) {
	e.stream.WriteNil()
	e.errors = append(e.errors, presentError(err, path))
}

func (e *nodeEncoder) user(u core.User, sel Selection, path []any) {
	s := e.stream
	s.WriteObjectStart()
	for i, f := range sel {
		if i > 0 {
			s.WriteMore()
		}
		s.WriteObjectField(f.Name)
		switch f.Name {
		case "id":
			s.WriteString(u.ID)
		case "name":
			s.WriteString(u.Name)
		case "email":
			s.WriteString(u.Email)
		case "age":
			if u.Age == nil {
				s.WriteNil()
			} else {
				s.WriteInt(*u.Age)
			}
		case "posts":
			e.posts(e.refs.ChildPostsOf(u.ID), f.Selection, childPath(path, f.Name))
		case "comments":
			e.comments(e.refs.ChildCommentsOfUser(u.ID), f.Selection, childPath(path, f.Name))
		}
	}
	s.WriteObjectEnd()
}

func (e *nodeEncoder) post(p core.Post, sel Selection, path []any) {
	s := e.stream
	s.WriteObjectStart()
	for i, f := range sel {
		if i > 0 {
			s.WriteMore()
		}
		s.WriteObjectField(f.Name)
		switch f.Name {
		case "id":
			s.WriteString(p.ID)
		case "title":
			s.WriteString(p.Title)
		case "body":
			s.WriteString(p.Body)
		case "published":
			s.WriteBool(p.Published)
		case "author":
			author, err := e.refs.ResolveAuthor(p.Author)
			if err != nil {
				e.stale(err, childPath(path, f.Name))
				continue
			}
			e.user(author, f.Selection, childPath(path, f.Name))
		case "comments":
			e.comments(e.refs.ChildCommentsOfPost(p.ID), f.Selection, childPath(path, f.Name))
		}
	}
	s.WriteObjectEnd()
}

func (e *nodeEncoder) comment(c core.Comment, sel Selection, path []any) {
	s := e.stream
	s.WriteObjectStart()
	for i, f := range sel {
		if i > 0 {
			s.WriteMore()
		}
		s.WriteObjectField(f.Name)
		switch f.Name {
		case "id":
			s.WriteString(c.ID)
		case "text":
			s.WriteString(c.Text)
		case "author":
			author, err := e.refs.ResolveAuthor(c.Author)
			if err != nil {
				e.stale(err, childPath(path, f.Name))
				continue
			}
			e.user(author, f.Selection, childPath(path, f.Name))
		case "post":
			post, err := e.refs.ResolveParentPost(c.Post)
			if err != nil {
				e.stale(err, childPath(path, f.Name))
				continue
			}
			e.post(post, f.Selection, childPath(path, f.Name))
		}
	}
	s.WriteObjectEnd()
}

func (e *nodeEncoder) users(list []core.User, sel Selection, path []any) {
	e.stream.WriteArrayStart()
	for i, u := range list {
		if i > 0 {
			e.stream.WriteMore()
		}
		e.user(u, sel, childPath(path, i))
	}
	e.stream.WriteArrayEnd()
}

func (e *nodeEncoder) posts(list []core.Post, sel Selection, path []any) {
	e.stream.WriteArrayStart()
	for i, p := range list {
		if i > 0 {
			e.stream.WriteMore()
		}
		e.post(p, sel, childPath(path, i))
	}
	e.stream.WriteArrayEnd()
}

func (e *nodeEncoder) comments(list []core.Comment, sel Selection, path []any) {
	e.stream.WriteArrayStart()
	for i, c := range list {
		if i > 0 {
			e.stream.WriteMore()
		}
		e.comment(c, sel, childPath(path, i))
	}
	e.stream.WriteArrayEnd()
}

// value dispatches on the concrete result type of an operation.
func (e *nodeEncoder) value(v any, sel Selection, path []any) {
	switch x := v.(type) {
	case core.User:
		e.user(x, sel, path)
	case core.Post:
		e.post(x, sel, path)
	case core.Comment:
		e.comment(x, sel, path)
	case []core.User:
		e.users(x, sel, path)
	case []core.Post:
		e.posts(x, sel, path)
	case []core.Comment:
		e.comments(x, sel, path)
	default:
		e.stream.WriteNil()
	}
}
