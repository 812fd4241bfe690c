// Package graph is the boundary between a request dispatcher and the core
// service. It maps operation names and loosely typed arguments onto service
// calls and renders results as a dereferenced object graph: relational fields
// (User.posts, Post.author, Comment.post, ...) are resolved lazily, and only
// when a selection asks for them.
package graph
