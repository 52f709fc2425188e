// Package saas defines the subscription business entities (plans, customers,
// subscriptions, payments, usage events, support tickets) and the pricing
// rules that tie them together: annual discount and MRR normalization. The types here are plain data; generation lives in
// pkg/generator and persistence in pkg/warehouse.
package saas
