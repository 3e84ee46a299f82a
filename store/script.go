package store

/*
	KEYS[1] -> run hash
		field -> value, one pair per summary field
	KEYS[2] -> history list of run ids, newest first

	ARGV[1] ttl (seconds), ARGV[2] history limit, ARGV[3] run id,
	ARGV[4...] field/value pairs
*/
const saveScript = `
local run_key = KEYS[1]
local history_key = KEYS[2]
local ttl = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])
local id = ARGV[3]

for i = 4, #ARGV, 2 do
    redis.call("HSET", run_key, ARGV[i], ARGV[i + 1])
end
redis.call("EXPIRE", run_key, ttl)

redis.call("LPUSH", history_key, id)
redis.call("LTRIM", history_key, 0, limit - 1)
return redis.call("LLEN", history_key)
`
