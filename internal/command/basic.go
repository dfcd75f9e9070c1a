package command

import (
	"fmt"

	"github.com/lojhan/hashtable-lab/internal/resp"
	"github.com/lojhan/hashtable-lab/internal/store"
)

// Handler executes one command. args excludes the command name.
type Handler func(args []resp.Value) resp.Value

type Registrar interface {
	RegisterCommand(name string, handler Handler)
}

// Register wires every command onto r.
func Register(r Registrar, s *store.Store) {
	r.RegisterCommand("PING", PingCommand)
	r.RegisterCommand("PUT", PutCommand(s))
	r.RegisterCommand("GET", GetCommand(s))
	r.RegisterCommand("DEL", DelCommand(s))
	r.RegisterCommand("EXISTS", ExistsCommand(s))
	r.RegisterCommand("LEN", LenCommand(s))
	r.RegisterCommand("SIZE", SizeCommand(s))
	r.RegisterCommand("LOADFACTOR", LoadFactorCommand(s))
	r.RegisterCommand("BUCKETS", BucketsCommand(s))
	r.RegisterCommand("VOTE", VoteCommand(s))
	r.RegisterCommand("VOTERS", VotersCommand(s))
	r.RegisterCommand("FLUSH", FlushCommand(s))
}

func PingCommand(args []resp.Value) resp.Value {
	if len(args) == 0 {
		return resp.PongValue()
	}

	strs, errVal := stringArgs("ping", args, 1)
	if errVal != nil {
		return *errVal
	}
	return resp.BulkStringValue(strs[0])
}

func wrongArity(name string) resp.Value {
	return resp.ErrorValue(fmt.Sprintf("ERR wrong number of arguments for '%s' command", name))
}

// stringArgs checks that args holds exactly n bulk strings and unwraps them.
func stringArgs(name string, args []resp.Value, n int) ([]string, *resp.Value) {
	if len(args) != n {
		errVal := wrongArity(name)
		return nil, &errVal
	}

	strs := make([]string, n)
	for i, arg := range args {
		if arg.Type != resp.BulkString || arg.Null {
			errVal := resp.ErrorValue("ERR invalid argument type")
			return nil, &errVal
		}
		strs[i] = arg.Str
	}
	return strs, nil
}
