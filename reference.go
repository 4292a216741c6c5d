package firemodel

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// collectionChain returns the collection names from the outermost ancestor
// down to m itself.
func collectionChain(m Model) ([]string, error) {
	chain := []string{m.CollectionName()}

	cur := m
	for {
		hp, ok := cur.(HasParent)
		if !ok {
			break
		}
		parent := hp.ParentModel()
		if parent == nil {
			return nil, goerr.Wrap(ErrReferenceResolution, "parent model is nil",
				goerr.V("collection", cur.CollectionName()))
		}
		// Firestore allows at most 100 path segments
		if len(chain) >= 50 {
			return nil, goerr.Wrap(ErrReferenceResolution, "parent chain is too deep",
				goerr.V("collection", m.CollectionName()))
		}

		chain = append(chain, parent.CollectionName())
		cur = parent
	}

	slices.Reverse(chain)
	return chain, nil
}

// resolveCollection builds the collection reference of m from its parent
// chain and the ids of the parent documents, outermost first.
func resolveCollection(m Model, parentIDs []string) (*CollectionRef, error) {
	chain, err := collectionChain(m)
	if err != nil {
		return nil, err
	}

	if len(parentIDs) != len(chain)-1 {
		return nil, goerr.Wrap(ErrReferenceResolution, "number of parent ids does not match the parent chain",
			goerr.V("chain", chain),
			goerr.V("parentIDs", parentIDs))
	}

	var parent *Reference
	for i, name := range chain {
		if name == "" {
			return nil, goerr.Wrap(ErrReferenceResolution, "empty collection name", goerr.V("chain", chain))
		}
		col := &CollectionRef{Parent: parent, Name: name}
		if i == len(chain)-1 {
			return col, nil
		}
		if parentIDs[i] == "" {
			return nil, goerr.Wrap(ErrReferenceResolution, "empty parent id",
				goerr.V("collection", name))
		}
		parent = col.Doc(parentIDs[i])
	}
	return nil, goerr.Wrap(ErrReferenceResolution, "empty parent chain")
}
