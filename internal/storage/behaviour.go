package storage

// Behavioural counters feed the matching engine that lives outside this
// service. They are fire-and-forget: callers log failures and move on.

const behaviourKeyPrefix = "behaviour:"

const (
	fieldChatInitiations = "chat_initiations"
	fieldChatLengthSum   = "chat_length_sum"
	fieldChatLengthCount = "chat_length_count"
)

// IncrementChatInitiation bumps the user's chat-initiation counter. Called
// when a user sends the first message ever recorded in a room.
func (s *Service) IncrementChatInitiation(userID string) error {
	return s.Redis.HIncrBy(s.Ctx, behaviourKeyPrefix+userID, fieldChatInitiations, 1).Err()
}

// AccumulateChatLength feeds one text message's length into the user's
// running average-chat-length accumulator (sum and count in one hash).
func (s *Service) AccumulateChatLength(userID string, length int) error {
	pipe := s.Redis.TxPipeline()
	pipe.HIncrBy(s.Ctx, behaviourKeyPrefix+userID, fieldChatLengthSum, int64(length))
	pipe.HIncrBy(s.Ctx, behaviourKeyPrefix+userID, fieldChatLengthCount, 1)
	_, err := pipe.Exec(s.Ctx)
	return err
}

// GetBehaviourStats returns the raw counter hash for a user. Used by the
// admin CLI.
func (s *Service) GetBehaviourStats(userID string) (map[string]string, error) {
	return s.Redis.HGetAll(s.Ctx, behaviourKeyPrefix+userID).Result()
}
