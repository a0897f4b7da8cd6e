package consul

import (
	"fmt"
	"log"
	"net"
	"os"
	"time"

	"github.com/hashicorp/consul/api"
)

// Config describes the Consul agent and, for services that register themselves,
// the advertised name and port.
type Config struct {
	// Address of the agent, host or host:port. Port 8500 is assumed when omitted.
	Address     string
	ServiceName string
	ServicePort int
	// HealthPath is checked over HTTP by the agent. Defaults to /health.
	HealthPath string
}

type Client struct {
	client      *api.Client
	serviceName string
	servicePort int
	healthPath  string
	hostname    func() (string, error)
}

// NewClient creates a new Consul client
func NewClient(cfg Config) (*Client, error) {
	address := cfg.Address
	if address == "" {
		address = "localhost"
	}
	if _, _, err := net.SplitHostPort(address); err != nil {
		address = fmt.Sprintf("%s:8500", address)
	}

	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create consul client: %w", err)
	}

	healthPath := cfg.HealthPath
	if healthPath == "" {
		healthPath = "/health"
	}

	return &Client{
		client:      client,
		serviceName: cfg.ServiceName,
		servicePort: cfg.ServicePort,
		healthPath:  healthPath,
		hostname:    os.Hostname,
	}, nil
}

func (c *Client) serviceID() (string, string, error) {
	hostname, err := c.hostname()
	if err != nil {
		return "", "", fmt.Errorf("failed to get hostname: %w", err)
	}
	return fmt.Sprintf("%s-%s", c.serviceName, hostname), hostname, nil
}

// RegisterService registers the service with Consul
func (c *Client) RegisterService() error {
	if c.serviceName == "" {
		return fmt.Errorf("service name is required for registration")
	}
	if c.servicePort == 0 {
		return fmt.Errorf("service port is required for registration")
	}

	id, hostname, err := c.serviceID()
	if err != nil {
		return err
	}

	registration := &api.AgentServiceRegistration{
		ID:      id,
		Name:    c.serviceName,
		Port:    c.servicePort,
		Address: hostname, // container hostname for internal Docker networking
		Check: &api.AgentServiceCheck{
			HTTP:                           fmt.Sprintf("http://%s:%d%s", hostname, c.servicePort, c.healthPath),
			Interval:                       "10s",
			Timeout:                        "3s",
			DeregisterCriticalServiceAfter: "30s",
		},
	}

	if err := c.client.Agent().ServiceRegister(registration); err != nil {
		return fmt.Errorf("failed to register service: %w", err)
	}

	log.Printf("Service %s registered with Consul at %s:%d", c.serviceName, hostname, c.servicePort)
	return nil
}

// DeregisterService removes the service from Consul
func (c *Client) DeregisterService() error {
	id, _, err := c.serviceID()
	if err != nil {
		return err
	}

	if err := c.client.Agent().ServiceDeregister(id); err != nil {
		return fmt.Errorf("failed to deregister service: %w", err)
	}

	log.Printf("Service %s deregistered from Consul", c.serviceName)
	return nil
}

// DiscoverService finds a healthy service instance and returns its host:port.
func (c *Client) DiscoverService(serviceName string) (string, error) {
	services, _, err := c.client.Health().Service(serviceName, "", true, nil)
	if err != nil {
		return "", fmt.Errorf("failed to discover service %s: %w", serviceName, err)
	}

	if len(services) == 0 {
		return "", fmt.Errorf("no healthy instances of service %s found", serviceName)
	}

	// first healthy instance wins
	service := services[0]
	address := service.Service.Address
	if address == "" && service.Node != nil {
		address = service.Node.Address
	}
	endpoint := fmt.Sprintf("%s:%d", address, service.Service.Port)

	log.Printf("Discovered service %s at %s", serviceName, endpoint)
	return endpoint, nil
}

// WaitForConsul waits for Consul to be available
func (c *Client) WaitForConsul(maxRetries int, interval time.Duration) error {
	for i := 0; i < maxRetries; i++ {
		_, err := c.client.Status().Leader()
		if err == nil {
			log.Printf("Consul is available")
			return nil
		}

		log.Printf("Waiting for Consul to be available... (attempt %d/%d)", i+1, maxRetries)
		time.Sleep(interval)
	}

	return fmt.Errorf("consul not available after %d retries", maxRetries)
}
