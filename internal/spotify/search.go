package spotify

import (
	"context"
	"net/url"
	"strings"
)

// Query is a search query: either TextQuery or FieldQuery.
type Query interface {
	queryString() string
}

// TextQuery is free text passed to the search endpoint as is.
type TextQuery string

func (q TextQuery) queryString() string {
	return string(q)
}

// Field is one field filter of a FieldQuery, such as artist:Air.
type Field struct {
	Name  string
	Value string
}

// FieldQuery is an ordered list of field filters, rendered as
// space-separated "name:value" tokens.
type FieldQuery []Field

func (q FieldQuery) queryString() string {
	tokens := make([]string, len(q))
	for i, f := range q {
		tokens[i] = f.Name + ":" + f.Value
	}
	return strings.Join(tokens, " ")
}

type searchOptions struct {
	searchType    SearchType
	operator      string
	operatorQuery string
}

// SearchOption configures a search.
type SearchOption func(*searchOptions)

// WithType sets the object type to search for. The default is SearchArtist.
func WithType(t SearchType) SearchOption {
	return func(o *searchOptions) {
		o.searchType = t
	}
}

// WithOperator refines the query with a single trailing " OP text" clause.
// Only "or" and "not" (any case) are honoured; other operators and an
// empty text are ignored. An empty text adds nothing, rather than a dangling
// "artist:Air OR ".
func WithOperator(op, text string) SearchOption {
	return func(o *searchOptions) {
		o.operator = op
		o.operatorQuery = text
	}
}

// BuildQuery renders the q parameter for a search.
func BuildQuery(q Query, opts ...SearchOption) (string, error) {
	if q == nil {
		return "", &ValidationError{Field: "query", Err: ErrMissingQuery}
	}

	o := applySearchOptions(opts)
	query := q.queryString()

	if o.operatorQuery != "" {
		switch op := strings.ToLower(o.operator); op {
		case "or", "not":
			query = query + " " + strings.ToUpper(op) + " " + o.operatorQuery
		}
	}
	return query, nil
}

// Search runs a catalog search. A nil query fails with *ValidationError.
func (c *Client) Search(ctx context.Context, q Query, opts ...SearchOption) (Document, error) {
	query, err := BuildQuery(q, opts...)
	if err != nil {
		return nil, err
	}

	o := applySearchOptions(opts)
	params := url.Values{
		"q":    {query},
		"type": {strings.ToLower(string(o.searchType))},
	}

	endpoint := c.baseURL + "/" + DefaultVersion + "/search?" + params.Encode()
	return c.get(ctx, "search", endpoint)
}

func applySearchOptions(opts []SearchOption) searchOptions {
	o := searchOptions{searchType: SearchArtist}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
