package shared

// BaseAggregateRoot extends BaseEntity with an optimistic-lock version
// and a buffer of domain events recorded during the current unit of
// work.
type BaseAggregateRoot struct {
	BaseEntity
	Version int           `gorm:"not null;default:1"`
	events  []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot returns an aggregate root at version 1 with no
// recorded events.
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{BaseEntity: NewBaseEntity(), Version: 1}
}

// AddDomainEvent records an event raised by the aggregate.
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.events = append(a.events, event)
}

// DomainEvents returns the events recorded since the last clear.
func (a *BaseAggregateRoot) DomainEvents() []DomainEvent {
	return a.events
}

// ClearDomainEvents drops the recorded events, typically after they have
// been handed off.
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.events = nil
}
