package service

import (
	"sort"
	"strings"

	"github.com/ventas-next/internal/constants"
)

// allowedTransitions 订单状态流转表
// new → confirmed/cancelled；confirmed → shipped/cancelled；
// shipped → delivered/cancelled；delivered、cancelled 为终态
var allowedTransitions = map[string]map[string]bool{
	constants.OrderStatusNew: {
		constants.OrderStatusConfirmed: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusConfirmed: {
		constants.OrderStatusShipped:   true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusShipped: {
		constants.OrderStatusDelivered: true,
		constants.OrderStatusCancelled: true,
	},
	constants.OrderStatusDelivered: {},
	constants.OrderStatusCancelled: {},
}

func normalizeOrderStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

func isValidOrderStatus(status string) bool {
	_, ok := allowedTransitions[normalizeOrderStatus(status)]
	return ok
}

// transitionSources 返回允许流转到目标状态的全部来源状态
func transitionSources(target string) []string {
	target = normalizeOrderStatus(target)
	sources := make([]string, 0, len(allowedTransitions))
	for from, targets := range allowedTransitions {
		if targets[target] {
			sources = append(sources, from)
		}
	}
	sort.Strings(sources)
	return sources
}

func isTransitionAllowed(current, target string) bool {
	current = normalizeOrderStatus(current)
	target = normalizeOrderStatus(target)
	if current == target {
		return true
	}
	targets, ok := allowedTransitions[current]
	if !ok {
		return false
	}
	return targets[target]
}
