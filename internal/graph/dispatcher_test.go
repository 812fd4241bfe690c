package graph_test

import (
	"context"
	"errors"

	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"

	"postgraph/internal/core"
	"postgraph/internal/graph"
)

var _ = Describe("Dispatcher", func() {
	var (
		ctx        context.Context
		dispatcher *graph.Dispatcher
		store      *core.MemoryStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		dispatcher, store = newDemo()
	})

	dispatch := func(op string, args graph.Args, sel string) graph.Response {
		return dispatcher.Dispatch(ctx, graph.Request{Operation: op, Args: args, Selection: sel})
	}

	Describe("queries", func() {
		It("returns scalar fields when no selection is given", func() {
			Expect(dispatch("users", nil, "")).Should(MatchResponseInJSON(`{
				"data": {
					"users": [
						{"id": "1", "name": "Brian", "email": "brian@example.com", "age": 26},
						{"id": "2", "name": "Sarah", "email": "sarah@example.com", "age": 29},
						{"id": "3", "name": "Mark", "email": "mark@example.com", "age": 30}
					]
				}
			}`))
		})

		It("dereferences relational fields named by the selection", func() {
			resp := dispatch("users", nil, "name posts { title comments { text author { name } } }")
			Expect(resp).Should(MatchResponseInJSON(`{
				"data": {
					"users": [
						{"name": "Brian", "posts": [
							{"title": "Intro post", "comments": [
								{"text": "This is the first comment", "author": {"name": "Mark"}}
							]},
							{"title": "Political rant", "comments": [
								{"text": "This is my second comment. Awesome!", "author": {"name": "Sarah"}},
								{"text": "This is another comment. Third to be exact ", "author": {"name": "Sarah"}}
							]}
						]},
						{"name": "Sarah", "posts": [
							{"title": "Tips for securing your first job", "comments": [
								{"text": "fourth comment coming through", "author": {"name": "Brian"}}
							]}
						]},
						{"name": "Mark", "posts": [
							{"title": "3 secrets to living a long life", "comments": []}
						]}
					]
				}
			}`))
		})

		It("searches posts by title or body ignoring case", func() {
			resp := dispatch("posts", graph.Args{"query": "POLITIC"}, "id author { name }")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"posts": [{"id": "11", "author": {"name": "Brian"}}]}}`))

			resp = dispatch("posts", graph.Args{"query": "sleep"}, "id")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"posts": [{"id": "12"}]}}`))
		})

		It("lists every post, unpublished included, when the query is absent", func() {
			resp := dispatch("posts", graph.Args{"query": nil}, "id published")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"posts": [
				{"id": "10", "published": true},
				{"id": "11", "published": true},
				{"id": "12", "published": true},
				{"id": "13", "published": false}
			]}}`))
		})

		It("uses scalar fields for a relational field named without subfields", func() {
			resp := dispatch("comments", nil, "id post")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"comments": [
				{"id": "101", "post": {"id": "10", "title": "Intro post", "body": "This is our first post. Welcome to our site. Hope to serve you. Thanks", "published": true}},
				{"id": "102", "post": {"id": "11", "title": "Political rant", "body": "Politics is dead as we know it. It is basically entertainment at this point", "published": true}},
				{"id": "103", "post": {"id": "11", "title": "Political rant", "body": "Politics is dead as we know it. It is basically entertainment at this point", "published": true}},
				{"id": "104", "post": {"id": "13", "title": "Tips for securing your first job", "body": "Apply. Do not fear putting yourself out there", "published": false}}
			]}}`))
		})
	})

	Describe("mutations", func() {
		It("creates a user and lists it last", func() {
			resp := dispatch("createUser", graph.Args{"name": "Ann", "email": "ann@example.com", "age": float64(31)}, "id name age posts { id }")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"createUser": {"id": "n1", "name": "Ann", "age": 31, "posts": []}}}`))

			resp = dispatch("users", nil, "id")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"users": [{"id": "1"}, {"id": "2"}, {"id": "3"}, {"id": "n1"}]}}`))
		})

		It("encodes a missing age as null", func() {
			resp := dispatch("createUser", graph.Args{"name": "Ann", "email": "ann@example.com"}, "id age")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"createUser": {"id": "n1", "age": null}}}`))
		})

		It("refuses a duplicate email", func() {
			resp := dispatch("createUser", graph.Args{"name": "Other", "email": "sarah@example.com"}, "id")
			Expect(resp.Failed()).Should(BeTrue())
			Expect(resp).Should(MatchResponseInJSON(`{"errors": [{
				"message": "email \"sarah@example.com\" already taken",
				"extensions": {"code": "DUPLICATE_EMAIL", "email": "sarah@example.com"}
			}]}`))
			Expect(store.ListUsers()).Should(HaveLen(3))
		})

		It("deletes a user with its posts and comments", func() {
			resp := dispatch("deleteUser", graph.Args{"id": "1"}, "id name posts { id } comments { id }")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"deleteUser": {"id": "1", "name": "Brian", "posts": [], "comments": []}}}`))

			Expect(dispatch("posts", nil, "id")).Should(MatchResponseInJSON(`{"data": {"posts": [{"id": "12"}, {"id": "13"}]}}`))
			Expect(dispatch("comments", nil, "id")).Should(MatchResponseInJSON(`{"data": {"comments": []}}`))
		})

		It("reports an unknown user on delete", func() {
			resp := dispatch("deleteUser", graph.Args{"id": "99"}, "")
			Expect(resp).Should(MatchResponseInJSON(`{"errors": [{
				"message": "user 99 not found",
				"extensions": {"code": "NOT_FOUND", "entity": "user", "id": "99"}
			}]}`))
		})

		It("refuses a post by an unknown author", func() {
			resp := dispatch("createPost", graph.Args{"title": "t", "body": "b", "published": true, "author": "99"}, "id")
			Expect(resp).Should(MatchResponseInJSON(`{"errors": [{
				"message": "post author: user 99 not found",
				"extensions": {"code": "NOT_FOUND", "entity": "user", "id": "99", "ref": "post_author"}
			}]}`))
			Expect(store.ListPosts()).Should(HaveLen(4))
		})

		It("refuses a comment on an unpublished post", func() {
			resp := dispatch("createComment", graph.Args{"text": "hi", "author": "2", "post": "13"}, "id")
			Expect(resp).Should(MatchResponseInJSON(`{"errors": [{
				"message": "comment post: published post 13 not found",
				"extensions": {"code": "NOT_FOUND", "entity": "post", "id": "13", "ref": "comment_post"}
			}]}`))
			Expect(store.ListComments()).Should(HaveLen(4))
		})

		It("returns a created post the same way the post list does", func() {
			created := dispatch("createPost", graph.Args{"title": "New", "body": "Fresh", "published": "true", "author": "3"}, "id title body published author { id }")
			Expect(created.Failed()).Should(BeFalse())

			listed := dispatch("posts", graph.Args{"query": "fresh"}, "id title body published author { id }")
			Expect(string(listed.Data)).Should(MatchJSON("[" + string(created.Data) + "]"))
		})

		It("creates a comment visible from its post", func() {
			resp := dispatch("createComment", graph.Args{"text": "nice", "author": "2", "post": "12"}, "id post { id comments { id } }")
			Expect(resp).Should(MatchResponseInJSON(`{"data": {"createComment": {"id": "n1", "post": {"id": "12", "comments": [{"id": "n1"}]}}}}`))
		})
	})

	Describe("bad requests", func() {
		expectBadRequest := func(resp graph.Response, message string) {
			Expect(resp.Failed()).Should(BeTrue())
			Expect(resp.Errors).Should(HaveLen(1))
			Expect(resp.Errors[0].Code()).Should(Equal(graph.CodeBadRequest))
			Expect(resp.Errors[0].Message).Should(Equal(message))
		}

		It("rejects an unknown operation", func() {
			expectBadRequest(dispatch("grades", nil, ""), `bad request: unknown operation "grades"`)
		})

		It("rejects undeclared arguments", func() {
			expectBadRequest(dispatch("users", graph.Args{"limit": float64(1)}, ""), `bad request: unknown argument "limit"`)
		})

		It("rejects missing and mistyped arguments", func() {
			expectBadRequest(dispatch("createUser", graph.Args{"name": "Ann"}, ""), `bad request: missing argument "email"`)
			expectBadRequest(dispatch("createUser", graph.Args{"name": "Ann", "email": "a@b", "age": 1.5}, ""), `bad request: argument "age" must be an integer, got float64`)
			expectBadRequest(
				dispatch("createPost", graph.Args{"title": "t", "body": "b", "published": "maybe", "author": "1"}, ""),
				`bad request: argument "published" must be a boolean, got string`,
			)
		})

		It("rejects an invalid selection before running a mutation", func() {
			expectBadRequest(dispatch("createUser", graph.Args{"name": "Ann", "email": "ann@example.com"}, "id nickname"), `bad request: type User has no field "nickname"`)
			Expect(store.ListUsers()).Should(HaveLen(3))
		})

		It("rejects subfields on scalars and repeated fields", func() {
			expectBadRequest(dispatch("users", nil, "name { id }"), "bad request: scalar field User.name has no subfields")
			expectBadRequest(dispatch("users", nil, "id id"), "bad request: field User.id selected twice")
		})

		It("matches ErrBadRequest through errors.Is", func() {
			_, err := graph.ParseSelection("{")
			Expect(errors.Is(err, graph.ErrBadRequest)).Should(BeTrue())
		})
	})

	Describe("stale references", func() {
		BeforeEach(func() {
			dispatcher, store = newDispatcher(core.SnapshotOf(
				[]core.User{{ID: "1", Name: "Brian", Email: "brian@example.com"}},
				[]core.Post{{ID: "p1", Title: "orphan", Published: true, Author: "ghost"}},
				[]core.Comment{{ID: "c1", Text: "lost", Author: "1", Post: "gone"}},
			))
		})

		It("encodes a missing author as null with a field error", func() {
			Expect(dispatch("posts", nil, "id author { name }")).Should(MatchResponseInJSON(`{
				"errors": [{
					"message": "user ghost not found",
					"path": ["posts", 0, "author"],
					"extensions": {"code": "NOT_FOUND", "entity": "user", "id": "ghost"}
				}],
				"data": {"posts": [{"id": "p1", "author": null}]}
			}`))
		})

		It("keeps resolving sibling fields of a missing post", func() {
			resp := dispatch("comments", nil, "id post { id } author { name }")
			Expect(resp.Failed()).Should(BeFalse())
			Expect(resp).Should(MatchResponseInJSON(`{
				"errors": [{
					"message": "post gone not found",
					"path": ["comments", 0, "post"],
					"extensions": {"code": "NOT_FOUND", "entity": "post", "id": "gone"}
				}],
				"data": {"comments": [{"id": "c1", "post": null, "author": {"name": "Brian"}}]}
			}`))
		})
	})

	It("writes the same document it marshals", func() {
		resp := dispatch("users", nil, "id posts { id }")
		data, err := resp.MarshalJSON()
		Expect(err).ShouldNot(HaveOccurred())
		Expect(encode(resp)).Should(Equal(string(data)))
	})

	It("lists the supported operations", func() {
		Expect(graph.Operations()).Should(Equal([]string{
			"comments", "createComment", "createPost", "createUser", "deleteUser", "posts", "users",
		}))
	})
})
