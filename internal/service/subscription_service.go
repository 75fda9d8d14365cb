package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/anikettiwarime/VideoTube/internal/domain"
	"github.com/anikettiwarime/VideoTube/internal/repository"
)

type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	userRepo         repository.UserRepository
}

func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository, userRepo repository.UserRepository) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo, userRepo: userRepo}
}

// Toggle subscribes or unsubscribes the actor from a channel.
// Subscribing to your own channel is permitted.
func (s *SubscriptionService) Toggle(ctx context.Context, channelID, actorID string) (*domain.ToggleResult, error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}
	actor, err := parseID(actorID, "user")
	if err != nil {
		return nil, err
	}

	exists, err := s.userRepo.Exists(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to check channel: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: channel does not exist", ErrNotFound)
	}

	subscribed, err := s.subscriptionRepo.Exists(ctx, actor, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to check subscription: %w", err)
	}

	if subscribed {
		if err := s.subscriptionRepo.Delete(ctx, actor, channel); err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to remove subscription: %w", err)
		}
		return &domain.ToggleResult{State: domain.ToggleRemoved}, nil
	}

	subscription, err := s.subscriptionRepo.Create(ctx, actor, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to create subscription: %w", err)
	}
	return &domain.ToggleResult{State: domain.ToggleAdded, Record: subscription}, nil
}

// Subscribers lists who follows the channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID string) (*domain.SubscriberList, error) {
	channel, err := parseID(channelID, "channel")
	if err != nil {
		return nil, err
	}

	subscribers, err := s.subscriptionRepo.Subscribers(ctx, channel)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribers: %w", err)
	}
	return &domain.SubscriberList{
		Subscribers: subscribers,
		TotalCount:  int64(len(subscribers)),
	}, nil
}

// SubscribedChannels lists the channels the user follows.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID string) (*domain.SubscribedChannelList, error) {
	subscriber, err := parseID(subscriberID, "user")
	if err != nil {
		return nil, err
	}

	channels, err := s.subscriptionRepo.SubscribedChannels(ctx, subscriber)
	if err != nil {
		return nil, fmt.Errorf("failed to list subscribed channels: %w", err)
	}
	return &domain.SubscribedChannelList{
		Channels:   channels,
		TotalCount: int64(len(channels)),
	}, nil
}
