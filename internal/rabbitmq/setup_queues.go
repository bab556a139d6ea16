package rabbitmq

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

func GetTaggingQueues(queueName string) []QueueConfig {
	return []QueueConfig{
		{QueueName: queueName, RoutingKey: "tag-snapshot"},
	}
}
