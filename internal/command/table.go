package command

import (
	"strconv"

	"github.com/lojhan/hashtable-lab/internal/resp"
	"github.com/lojhan/hashtable-lab/internal/store"
)

func PutCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		strs, errVal := stringArgs("put", args, 2)
		if errVal != nil {
			return *errVal
		}

		return resp.BoolValue(s.Table().Put(strs[0], strs[1]))
	}
}

func GetCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		strs, errVal := stringArgs("get", args, 1)
		if errVal != nil {
			return *errVal
		}

		value, exists := s.Table().Get(strs[0])
		if !exists {
			return resp.NullBulkStringValue()
		}
		return resp.BulkStringValue(value)
	}
}

func DelCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		strs, errVal := stringArgs("del", args, 1)
		if errVal != nil {
			return *errVal
		}

		return resp.BoolValue(s.Table().Delete(strs[0]))
	}
}

func ExistsCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		strs, errVal := stringArgs("exists", args, 1)
		if errVal != nil {
			return *errVal
		}

		return resp.BoolValue(s.Table().Exists(strs[0]))
	}
}

func LenCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		if len(args) != 0 {
			return wrongArity("len")
		}
		return resp.IntegerValue(int64(s.Table().Len()))
	}
}

func SizeCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		if len(args) != 0 {
			return wrongArity("size")
		}
		return resp.IntegerValue(int64(s.Table().Size()))
	}
}

func LoadFactorCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		if len(args) != 0 {
			return wrongArity("loadfactor")
		}
		return resp.BulkStringValue(strconv.FormatFloat(s.Table().LoadFactor(), 'f', -1, 64))
	}
}

func BucketsCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		if len(args) != 0 {
			return wrongArity("buckets")
		}

		lens := s.Table().BucketLens()
		values := make([]resp.Value, len(lens))
		for i, n := range lens {
			values[i] = resp.IntegerValue(int64(n))
		}
		return resp.ArrayValue(values...)
	}
}

func FlushCommand(s *store.Store) Handler {
	return func(args []resp.Value) resp.Value {
		if len(args) != 0 {
			return wrongArity("flush")
		}
		s.Flush()
		return resp.OKValue()
	}
}
