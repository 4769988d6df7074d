package convert

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/seldinet/tui.editor/internal/logging"
	"github.com/seldinet/tui.editor/internal/mdast"
	"github.com/seldinet/tui.editor/internal/model"
	"github.com/seldinet/tui.editor/internal/tags"
	"github.com/seldinet/tui.editor/pkg/interfaces"
)

// Convertor turns a markdown AST into a document of its schema.
type Convertor struct {
	schema *model.Schema
	table  Table
	logger interfaces.Logger
}

// Option configures a Convertor.
type Option func(*Convertor, map[mdast.Kind]bool)

// WithLogger sets the logger used for traversal diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(c *Convertor, _ map[mdast.Kind]bool) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTable overrides the handlers of the given kinds. Overridden kinds are
// not checked against the schema; the caller owns the types they use.
func WithTable(overrides Table) Option {
	return func(c *Convertor, custom map[mdast.Kind]bool) {
		for kind, handler := range overrides {
			c.table[kind] = handler
			custom[kind] = true
		}
	}
}

// New builds a convertor for schema. The handler table and the schema are
// checked once here so conversion itself never fails on a missing type.
func New(schema *model.Schema, opts ...Option) (*Convertor, error) {
	if schema == nil {
		return nil, ErrNilSchema
	}
	c := &Convertor{
		schema: schema,
		table:  DefaultTable(),
		logger: logging.NoOp(),
	}
	custom := map[mdast.Kind]bool{}
	for _, opt := range opts {
		if opt != nil {
			opt(c, custom)
		}
	}

	if err := c.table.Validate(); err != nil {
		return nil, err
	}

	defaults := map[mdast.Kind]bool{}
	for _, kind := range mdast.Convertible() {
		if !custom[kind] {
			defaults[kind] = true
		}
	}
	if err := checkRequirements(schema, defaults); err != nil {
		return nil, err
	}
	if defaults[mdast.KindHTMLInline] || defaults[mdast.KindHTMLBlock] {
		if err := checkTagTargets(schema); err != nil {
			return nil, err
		}
	}
	return c, nil
}

func checkTagTargets(schema *model.Schema) error {
	var missing []string
	for _, name := range tags.TagNames() {
		target, _ := tags.Lookup(name)
		if target.Mark {
			if schema.Mark(target.NodeType) == nil {
				missing = append(missing, name+" -> mark "+target.NodeType)
			}
			continue
		}
		if schema.Node(target.NodeType) == nil {
			missing = append(missing, name+" -> node "+target.NodeType)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: %s", ErrUnknownTagType, strings.Join(missing, ", "))
	}
	return nil
}

// Schema returns the target schema.
func (c *Convertor) Schema() *model.Schema { return c.schema }

// Convert builds a fresh document from tree.
func (c *Convertor) Convert(ctx context.Context, tree *mdast.Tree) (*model.Node, error) {
	builder := model.NewBuilder(c.schema)
	if err := c.ConvertInto(ctx, builder, tree); err != nil {
		return nil, err
	}
	return builder.Document(), nil
}

// ConvertInto replays tree into state. Every node a handler opens while the
// traversal is inside a source container is closed before that container's
// exit completes, and state is back at its starting depth on return.
func (c *Convertor) ConvertInto(ctx context.Context, state State, tree *mdast.Tree) error {
	if tree == nil {
		return ErrNilTree
	}
	if state == nil {
		return ErrNilState
	}
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx, c.logger)

	start := state.Depth()
	scope := &scopedState{State: state}
	frames := []int{start}
	walker := tree.Walk()
	events := 0

	defer unwind(state, start)

	for {
		ev, ok := walker.Next()
		if !ok {
			break
		}
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("convert: interrupted after %d events: %w", events, err)
		}
		events++

		node := ev.Node
		kind := node.Kind()
		if kind == mdast.KindDocument {
			continue
		}

		handler := c.table[kind]
		if handler == nil {
			logger.Debug("convert: no handler, subtree dropped", "kind", kind.String())
			if ev.Entering {
				walker.SkipChildren()
			}
			continue
		}

		parentInner := frames[len(frames)-1]

		if kind.IsLeaf() {
			entering := true
			if kind == mdast.KindHTMLInline || kind == mdast.KindHTMLBlock {
				info, resolved := tags.Resolve(node.Literal())
				if !resolved {
					logger.Debug("convert: unresolved html dropped", "kind", kind.String(), "literal", node.Literal())
				}
				entering = !info.Closing
			}
			scope.floor = parentInner
			handler(scope, node, Context{Entering: entering})
			continue
		}

		if ev.Entering {
			before := state.Depth()
			skipped := false
			scope.floor = parentInner
			handler(scope, node, Context{
				Entering: true,
				SkipChildren: func() {
					skipped = true
				},
			})
			if skipped {
				walker.SkipChildren()
				unwind(state, before)
				continue
			}
			frames = append(frames, state.Depth())
			continue
		}

		inner := frames[len(frames)-1]
		frames = frames[:len(frames)-1]
		if dangling := state.Depth() - inner; dangling > 0 {
			logger.Debug("convert: closing dangling nodes", "kind", kind.String(), "count", dangling)
			unwind(state, inner)
		}
		scope.floor = frames[len(frames)-1]
		handler(scope, node, Context{Entering: false})
	}

	logger.Debug("convert: traversal complete", "events", events)
	return nil
}

// scopedState ignores closes that would reach past the enclosing source
// container.
type scopedState struct {
	State
	floor int
}

func (s *scopedState) CloseNode() *model.Node {
	if s.State.Depth() <= s.floor {
		return nil
	}
	return s.State.CloseNode()
}

func unwind(state State, depth int) {
	for state.Depth() > depth {
		if state.CloseNode() == nil {
			return
		}
	}
}
