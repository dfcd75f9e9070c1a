package command

import (
	"github.com/lojhan/hashtable-lab/internal/resp"
	"github.com/lojhan/hashtable-lab/internal/store"
)

func VoteCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		strs, errVal := stringArgs("vote", args, 1)
		if errVal != nil {
			return *errVal
		}

		return resp.BoolValue(s.Vote(strs[0]))
	}
}

func VotersCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		if len(args) != 0 {
			return wrongArity("voters")
		}

		names := s.Voters().Names()
		values := make([]resp.Value, len(names))
		for i, name := range names {
			values[i] = resp.BulkStringValue(name)
		}
		return resp.ArrayValue(values...)
	}
}
