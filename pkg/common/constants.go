package common

const (
	RedisStreamRiskJobInvocation = "risk.job.invocation"

	RedisStreamGroup    = "executor-group"
	RedisStreamConsumer = "executor-consumer"

	// RedisKeyChunkLock is formatted with function name, selection snapshot (unix) and chunk index.
	RedisKeyChunkLock = "risk_job_lock:%s:%d:%d"
	// RedisKeyCycleLock is formatted with function name; it guards chunk 0 of any cycle.
	RedisKeyCycleLock = "risk_job_lock:%s:cycle"
	// RedisKeyTickerLock is formatted with function name and ticker.
	RedisKeyTickerLock = "risk_job_lock:%s:ticker:%s"
)
